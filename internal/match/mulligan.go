package match

import (
	"math/rand"

	"ikasama/internal/config"
)

// SetMulliganSelection records which opening-hand indices a seat wants to
// exchange. Out-of-range and duplicate indices are dropped.
func (s *State) SetMulliganSelection(role Role, indices []int) {
	if !s.IsMulliganPhase || !role.Seated() {
		return
	}
	side := s.SideOf(role)
	seen := map[int]bool{}
	var clean []int
	for _, i := range indices {
		if i < 0 || i >= len(side.Hand) || seen[i] {
			continue
		}
		seen[i] = true
		clean = append(clean, i)
	}
	switch role {
	case RolePlayer:
		s.PlayerMulliganCards = clean
		s.PlayerMulliganDone = true
	case RoleOpponent:
		s.OpponentMulliganCards = clean
		s.OpponentMulliganDone = true
	}
}

// MulliganDone reports whether a seat has confirmed its selection.
func (s *State) MulliganDone(role Role) bool {
	switch role {
	case RolePlayer:
		return s.PlayerMulliganDone
	case RoleOpponent:
		return s.OpponentMulliganDone
	default:
		return false
	}
}

// BothMulliganDone reports whether both seats have confirmed.
func (s *State) BothMulliganDone() bool {
	return s.PlayerMulliganDone && s.OpponentMulliganDone
}

// ExecuteMulligan redraws every selected card for both seats and closes the
// phase. Seats that never confirmed keep their hand as dealt. Replacement
// cards are drawn at random from the catalog snapshot.
func (s *State) ExecuteMulligan(rng *rand.Rand, rules config.Rules) {
	if !s.IsMulliganPhase {
		return
	}
	s.redraw(&s.Player, s.PlayerMulliganCards, rng)
	s.redraw(&s.Opponent, s.OpponentMulliganCards, rng)
	s.PlayerMulliganCards = nil
	s.OpponentMulliganCards = nil
	s.EndMulligan(rules)
}

func (s *State) redraw(side *Side, indices []int, rng *rand.Rand) {
	if len(s.Cards) == 0 {
		return
	}
	for _, i := range indices {
		if i < 0 || i >= len(side.Hand) {
			continue
		}
		side.Hand[i] = s.Cards[rng.Intn(len(s.Cards))].ID
	}
}
