package match

import (
	"time"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
)

// New creates a fresh, not-yet-started match state for a room.
func New(roomID string, rules config.Rules, cat *catalog.Catalog) *State {
	return &State{
		RoomID:      roomID,
		CurrentTurn: RolePlayer,
		Timer:       rules.TurnSeconds,
		Player:      newSide(rules),
		Opponent:    newSide(rules),
		Cards:       cat.Cards(),
	}
}

func newSide(rules config.Rules) Side {
	return Side{
		HP:      rules.StartingHP,
		Mana:    rules.StartingMana,
		MaxMana: rules.StartingMana,
		Deck:    rules.StartingDeck,
		Hand:    []int{},
		Field:   []int{},
		Grave:   []int{},
	}
}

// Start deals opening hands, records the first-attack seat, and opens the
// mulligan phase. Calling it on a started state is a no-op.
func (s *State) Start(firstAttack Role, rules config.Rules) {
	if s.Started {
		return
	}
	s.Started = true
	s.IsGameOver = false
	s.Winner = RoleNone
	s.CurrentTurn = RolePlayer
	s.Timer = rules.TurnSeconds
	s.FirstAttackRole = firstAttack
	s.CheatLog = nil

	opening := rules.OpeningHand
	if opening > len(s.Cards) {
		opening = len(s.Cards)
	}
	s.Player.Hand = make([]int, 0, opening)
	s.Opponent.Hand = make([]int, 0, opening)
	for _, c := range s.Cards[:opening] {
		s.Player.Hand = append(s.Player.Hand, c.ID)
		s.Opponent.Hand = append(s.Opponent.Hand, c.ID)
	}

	s.IsMulliganPhase = true
	s.MulliganTimer = rules.MulliganSeconds
	s.PlayerMulliganDone = false
	s.OpponentMulliganDone = false
	s.PlayerMulliganCards = nil
	s.OpponentMulliganCards = nil
}

// EndMulligan closes the mulligan phase and hands the first battle turn to
// the first-attack seat.
func (s *State) EndMulligan(rules config.Rules) {
	if !s.IsMulliganPhase {
		return
	}
	s.IsMulliganPhase = false
	s.MulliganTimer = 0
	if s.FirstAttackRole.Seated() {
		s.CurrentTurn = s.FirstAttackRole
	}
	s.Timer = rules.TurnSeconds
}

// SwitchTurn flips the turn owner and resets the turn clock. No-op once the
// game is over.
func (s *State) SwitchTurn(rules config.Rules) {
	if s.IsGameOver {
		return
	}
	s.CurrentTurn = s.CurrentTurn.Other()
	s.Timer = rules.TurnSeconds
}

// CheckGameOver applies the end conditions: a side at hp <= 0 or at the
// penalty cap loses. Idempotent: once the game is over the winner is fixed.
func (s *State) CheckGameOver(rules config.Rules) {
	if s.IsGameOver {
		return
	}
	switch {
	case s.Player.HP <= 0:
		s.IsGameOver = true
		s.Winner = RoleOpponent
	case s.Opponent.HP <= 0:
		s.IsGameOver = true
		s.Winner = RolePlayer
	}
	if s.IsGameOver {
		return
	}
	switch {
	case s.Player.Penalty >= rules.MaxPenalty:
		s.IsGameOver = true
		s.Winner = RoleOpponent
	case s.Opponent.Penalty >= rules.MaxPenalty:
		s.IsGameOver = true
		s.Winner = RolePlayer
	}
}

// AppendCheat records a covert action in the shared log, evicting the oldest
// entry past the cap.
func (s *State) AppendCheat(by Role, action string, payload map[string]any, now time.Time, rules config.Rules) {
	s.CheatLog = append(s.CheatLog, CheatEntry{
		TS:      epochSeconds(now),
		By:      by,
		Action:  action,
		Payload: payload,
	})
	if over := len(s.CheatLog) - rules.CheatLogCap; over > 0 {
		s.CheatLog = s.CheatLog[over:]
	}
}

// RecentCheatsBy returns log entries attributed to the accused seat within
// the accuse window, most recent first, capped at the configured list size.
// The boundary is inclusive: an entry at exactly now-window still qualifies.
func (s *State) RecentCheatsBy(accused Role, now time.Time, rules config.Rules) []CheatEntry {
	nowSec := epochSeconds(now)
	window := float64(rules.AccuseSeconds)
	var recent []CheatEntry
	for i := len(s.CheatLog) - 1; i >= 0; i-- {
		e := s.CheatLog[i]
		if e.By != accused || e.Action == ActionAccuse {
			continue
		}
		if nowSec-e.TS > window {
			continue
		}
		recent = append(recent, e)
		if len(recent) >= rules.AccuseListCap {
			break
		}
	}
	return recent
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
