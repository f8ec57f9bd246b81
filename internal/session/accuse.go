package session

import (
	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// accuseWindow is the modal accusation sub-state: a snapshot of the
// accusable entries taken at open time, plus this window's own countdown.
// Closing it never touches the turn clock.
type accuseWindow struct {
	open    bool
	entries []match.CheatEntry
	window  countdown
}

func (a *accuseWindow) close() {
	a.open = false
	a.entries = nil
	a.window.stop()
}

// OpenAccuse opens the accusation window against the opposing seat. The
// candidate list is fixed at open time: entries by the opponent within the
// window, newest first. Reopening restarts only this window's countdown.
func (s *Session) OpenAccuse() []match.CheatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBattle {
		return nil
	}

	var entries []match.CheatEntry
	s.store.Read(func(st *match.State) {
		if !st.Started || st.IsGameOver {
			return
		}
		entries = st.RecentCheatsBy(s.myRole.Other(), s.now(), s.rules)
	})

	s.accuse.open = true
	s.accuse.entries = entries
	s.accuse.window.start(s.rules.AccuseSeconds)
	s.hooks.AccuseOpened(entries)
	s.publishClocks()
	return entries
}

// AccuseEntries returns the candidate list shown by the open window.
func (s *Session) AccuseEntries() []match.CheatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accuse.open {
		return nil
	}
	return s.accuse.entries
}

// AccuseOpen reports whether the modal window is up.
func (s *Session) AccuseOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accuse.open
}

// Accuse resolves the open window. index picks an entry from the list shown
// at open time; a negative index is the explicit "no entry" choice, a false
// accusation that penalizes the accuser. Out-of-range indices are treated
// the same way. The window closes either way.
func (s *Session) Accuse(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accuse.open {
		return
	}

	payload := &protocol.AccusePayload{Index: index}
	if index >= 0 && index < len(s.accuse.entries) {
		e := s.accuse.entries[index]
		payload.TS = e.TS
		payload.Action = e.Action
		s.logger.Log(log.NewAccuseSuccessEvent(s.myRole.String(), e.Action))
	} else {
		payload.Index = -1
		s.logger.Log(log.NewAccuseFailedEvent(s.myRole.String()))
	}

	s.send(protocol.ClientMessage{
		Type:   protocol.TypeAction,
		Action: protocol.ActionAccuse,
		Accuse: payload,
	})
	s.closeAccuseLocked()
}

// CancelAccuse dismisses the window with no penalty on either side.
func (s *Session) CancelAccuse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accuse.open {
		return
	}
	s.closeAccuseLocked()
}

// closeAccuseLocked tears the window down. Callers hold the lock.
func (s *Session) closeAccuseLocked() {
	s.accuse.close()
	s.hooks.AccuseClosed()
	s.publishClocks()
}
