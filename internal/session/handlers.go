package session

import (
	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Inbound message handlers. The transport calls these from its read loop;
// each one takes the lock, applies its whole effect, and returns. The store
// is only ever written from here and from the offline clock.

// HandleHello records the assigned seat and room.
func (s *Session) HandleHello(role match.Role, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.myRole = role
	s.viewRole.Store(role)
	s.roomID = roomID
	s.logger.Log(log.NewMatchStartEvent(roomID, role.String()))
}

// HandleState replaces the match state wholesale with an authoritative
// snapshot and re-derives the screen phase from it.
func (s *Session) HandleState(st *match.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == nil {
		return
	}
	s.store.Replace(st)

	switch {
	case st.IsGameOver:
		s.accuse.close()
		s.hooks.AccuseClosed()
		s.logger.Log(log.NewGameOverEvent(st.Winner.String()))
		s.setPhase(PhaseGameOver)
	case st.IsMulliganPhase:
		s.setPhase(PhaseMulligan)
	case st.Started:
		s.setPhase(PhaseBattle)
	}
	s.publishClocks()
}

// HandleRealtime applies the authoritative countdowns without a full
// snapshot. Offline mode never receives these; networked mode takes its
// turn and mulligan clocks exclusively from here.
func (s *Session) HandleRealtime(f protocol.RealtimeFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offline {
		return
	}
	s.store.Update(func(st *match.State) bool {
		changed := false
		if f.Timer >= 0 && st.Timer != f.Timer {
			st.Timer = f.Timer
			changed = true
		}
		if f.MulliganTimer >= 0 && st.MulliganTimer != f.MulliganTimer {
			st.MulliganTimer = f.MulliganTimer
			changed = true
		}
		if f.CurrentTurn.Seated() && st.CurrentTurn != f.CurrentTurn {
			st.CurrentTurn = f.CurrentTurn
			s.logger.Log(log.NewTurnSwitchEvent(f.CurrentTurn.String()))
			changed = true
		}
		return changed
	})
	s.publishClocks()
}

// HandleCursors mirrors the remote seat's cursor.
func (s *Session) HandleCursors(cursors map[string]protocol.CursorPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := cursors[s.myRole.Other().String()]; ok {
		s.hooks.OpponentCursor(c.X, c.Y)
	}
}

// HandleSystem shows status text. The opponent-found notice additionally
// arms the one-second transition into battle.
func (s *Session) HandleSystem(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Log(log.NewSystemMessageEvent(message))
	s.hooks.SystemMessage(message)
	if message == protocol.SystemOpponentFound {
		s.battleDelay.start(1)
	}
}

// HandleAck records the server's acknowledgement of a client action.
func (s *Session) HandleAck(action string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Log(log.NewTransportMessageEvent(protocol.TypeAck + ":" + action))
}

// HandleError is fatal for the current session: surface it and return to
// the title screen.
func (s *Session) HandleError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Log(log.NewProtocolErrorEvent(message))
	s.hooks.SystemMessage(message)
	s.reset()
}

// HandleClosed reports transport loss. Transport-owned identity resets; a
// match outcome already resolved stays resolved in the store.
func (s *Session) HandleClosed(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Log(log.NewTransportClosedEvent(reason))
	s.hooks.Disconnected(reason)
	if s.phase != PhaseGameOver {
		s.reset()
	} else {
		s.sender = nil
	}
}
