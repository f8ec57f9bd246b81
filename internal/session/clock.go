package session

import (
	"ikasama/internal/log"
	"ikasama/internal/match"
)

// countdown is one named timer slot. Starting it replaces any previous
// instance of the same slot; other slots are untouched. It fires exactly
// once, when the remaining count reaches zero.
type countdown struct {
	running   bool
	remaining int
}

func (c *countdown) start(seconds int) {
	c.running = true
	c.remaining = seconds
}

func (c *countdown) stop() {
	c.running = false
	c.remaining = 0
}

// tick advances one second and reports whether the slot fired. Underflow is
// clamped: a slot started at zero fires on the next tick and then stops.
func (c *countdown) tick() bool {
	if !c.running {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return true
	}
	return false
}

// reading returns the remaining seconds, -1 when the slot is idle.
func (c *countdown) reading() int {
	if !c.running {
		return -1
	}
	return c.remaining
}

// TickSecond advances every per-second clock the session owns. In offline
// mode that includes the mulligan and turn clocks inside the match state; in
// networked mode those arrive in realtime frames and only the session-local
// slots (battle delay, accuse window) tick here.
func (s *Session) TickSecond() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The post-matchmaking delay only moves connecting into battle; a match
	// that already progressed on its own is left alone.
	if s.battleDelay.tick() && s.phase == PhaseConnecting {
		s.setPhase(PhaseBattle)
	}

	if s.accuse.window.tick() {
		s.logger.Log(log.NewTimerExpiredEvent("accuse"))
		s.closeAccuseLocked()
	}

	if s.offline {
		s.tickMatchClocks()
	}

	s.publishClocks()
}

// tickMatchClocks runs the mulligan and turn countdowns against the offline
// match state. Callers hold the lock.
func (s *Session) tickMatchClocks() {
	s.store.Update(func(st *match.State) bool {
		if !st.Started || st.IsGameOver {
			return false
		}

		if st.IsMulliganPhase {
			if st.MulliganTimer > 0 {
				st.MulliganTimer--
			}
			if st.MulliganTimer <= 0 || st.BothMulliganDone() {
				st.MulliganTimer = 0
				s.logger.Log(log.NewTimerExpiredEvent("mulligan"))
				st.ExecuteMulligan(s.rng, s.rules)
				s.setPhase(PhaseBattle)
				s.runOpponentIfOnTurn(st)
			}
			return true
		}

		if st.Timer > 0 {
			st.Timer--
		}
		if st.Timer <= 0 {
			st.Timer = 0
			s.logger.Log(log.NewTimerExpiredEvent("turn"))
			st.SwitchTurn(s.rules)
			s.logger.Log(log.NewTurnSwitchEvent(st.CurrentTurn.String()))
			s.runOpponentIfOnTurn(st)
		}

		if st.IsGameOver {
			s.logger.Log(log.NewGameOverEvent(st.Winner.String()))
			s.setPhase(PhaseGameOver)
		}
		return true
	})
}

// runOpponentIfOnTurn gives the scripted seat its single atomic step and
// hands the turn straight back. Offline only; callers hold the lock and the
// store slot.
func (s *Session) runOpponentIfOnTurn(st *match.State) {
	if st.CurrentTurn != match.RoleOpponent || st.IsGameOver || st.IsMulliganPhase {
		return
	}
	res := s.opponent.Step(st, s.rules)
	if res.Played != nil {
		s.logger.Log(log.NewOpponentStepEvent("opponent plays " + res.Played.Name))
	}
	if res.Cheated != "" {
		s.logger.Log(log.NewCovertActionEvent(match.RoleOpponent.String(), res.Cheated))
	}
	st.SwitchTurn(s.rules)
	if st.IsGameOver {
		s.logger.Log(log.NewGameOverEvent(st.Winner.String()))
		s.setPhase(PhaseGameOver)
	}
}

// publishClocks pushes the current countdown readings. Callers hold the
// lock.
func (s *Session) publishClocks() {
	turn, mulligan := -1, -1
	s.store.Read(func(st *match.State) {
		if !st.Started || st.IsGameOver {
			return
		}
		if st.IsMulliganPhase {
			mulligan = st.MulliganTimer
		} else {
			turn = st.Timer
		}
	})
	s.hooks.ClockChanged(turn, mulligan, s.accuse.window.reading())
}
