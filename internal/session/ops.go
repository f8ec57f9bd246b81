package session

import (
	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Action facade for the interaction layer. Every operation is translated to
// a client message; the transport (server or offline simulator) applies it
// and the result comes back as a state update. Validation failures are
// silent no-ops down the line.

// StartMatch asks the transport to begin the match.
func (s *Session) StartMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send(protocol.ClientMessage{Type: protocol.TypeAction, Action: protocol.ActionStart})
}

// PlayCard plays the card at handIndex from the local hand.
func (s *Session) PlayCard(handIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actionAllowed() {
		return
	}
	s.store.Read(func(st *match.State) {
		side := st.SideOf(s.myRole)
		if side == nil || handIndex < 0 || handIndex >= len(side.Hand) {
			return
		}
		c := st.Card(side.Hand[handIndex])
		s.logger.Log(log.NewPlayCardEvent(s.myRole.String(), c.Name, c.Cost))
	})
	s.send(protocol.ClientMessage{
		Type:   protocol.TypeAction,
		Action: protocol.ActionPlayCard,
		Play:   &protocol.PlayCardPayload{HandIndex: handIndex},
	})
}

// EndTurn passes the turn.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actionAllowed() {
		return
	}
	s.send(protocol.ClientMessage{Type: protocol.TypeAction, Action: protocol.ActionEndTurn})
}

// SneakToGrave covertly moves the card at handIndex to the grave.
func (s *Session) SneakToGrave(handIndex int) {
	s.covert(protocol.ActionSneakGrave, handIndex)
}

// SneakDiscard covertly removes the card at handIndex.
func (s *Session) SneakDiscard(handIndex int) {
	s.covert(protocol.ActionSneakDiscard, handIndex)
}

// DestroyOpponentField covertly removes the card at fieldIndex from the
// enemy field.
func (s *Session) DestroyOpponentField(fieldIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actionAllowed() {
		return
	}
	s.logger.Log(log.NewCovertActionEvent(s.myRole.String(), protocol.ActionDestroyDemo))
	s.send(protocol.ClientMessage{
		Type:   protocol.TypeAction,
		Action: protocol.ActionDestroyDemo,
		Play:   &protocol.PlayCardPayload{FieldIndex: fieldIndex},
	})
}

func (s *Session) covert(action string, handIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actionAllowed() {
		return
	}
	s.logger.Log(log.NewCovertActionEvent(s.myRole.String(), action))
	s.send(protocol.ClientMessage{
		Type:   protocol.TypeAction,
		Action: action,
		Play:   &protocol.PlayCardPayload{HandIndex: handIndex},
	})
}

// Cheat sends one entry of the server-honored cheat set.
func (s *Session) Cheat(cheatType string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actionAllowed() {
		return
	}
	s.logger.Log(log.NewCovertActionEvent(s.myRole.String(), cheatType))
	s.send(protocol.ClientMessage{
		Type:   protocol.TypeAction,
		Action: protocol.ActionCheat,
		Cheat:  &protocol.CheatPayload{CheatType: cheatType, Data: data},
	})
}

// ConfirmMulligan submits the opening-hand indices to exchange. An empty
// selection keeps the hand as dealt.
func (s *Session) ConfirmMulligan(indices []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseMulligan && s.phase != PhaseBattle {
		return
	}
	s.logger.Log(log.NewMulliganDoneEvent(s.myRole.String(), len(indices)))
	s.send(protocol.ClientMessage{
		Type:     protocol.TypeAction,
		Action:   protocol.ActionMulligan,
		Mulligan: &protocol.MulliganPayload{CardIndices: indices},
	})
}

// SendCursor mirrors the local cursor position to the other seat. Throttling
// is the transport's concern.
func (s *Session) SendCursor(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBattle && s.phase != PhaseMulligan {
		return
	}
	s.send(protocol.ClientMessage{
		Type:    protocol.TypeAction,
		Action:  protocol.ActionCursor,
		Payload: &protocol.CursorPayload{X: x, Y: y},
	})
}

// actionAllowed gates ordinary actions on phase and the modal accuse
// window. Callers hold the lock.
func (s *Session) actionAllowed() bool {
	if s.accuse.open {
		return false
	}
	return s.phase == PhaseBattle
}
