package match

import (
	"testing"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
)

func mulliganState(rules config.Rules) *State {
	s := New("room-m", rules, catalog.Default())
	s.Start(RolePlayer, rules)
	return s
}

func TestMulliganSelectionFiltering(t *testing.T) {
	rules := config.Default()
	s := mulliganState(rules)

	s.SetMulliganSelection(RolePlayer, []int{0, 0, 2, 99, -1})

	if !s.PlayerMulliganDone {
		t.Fatal("selection should mark the seat done")
	}
	if got := s.PlayerMulliganCards; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("selection = %v, want [0 2]", got)
	}
	if s.BothMulliganDone() {
		t.Error("both done before opponent confirmed")
	}
	s.SetMulliganSelection(RoleOpponent, nil)
	if !s.BothMulliganDone() {
		t.Error("both seats confirmed, BothMulliganDone false")
	}
}

func TestExecuteMulliganRedraws(t *testing.T) {
	rules := config.Default()
	s := mulliganState(rules)
	kept := s.Player.Hand[1]

	s.SetMulliganSelection(RolePlayer, []int{0, 2})
	s.SetMulliganSelection(RoleOpponent, nil)
	before := append([]int(nil), s.Opponent.Hand...)

	s.ExecuteMulligan(seeded(3), rules)

	if s.IsMulliganPhase {
		t.Fatal("phase still open after execute")
	}
	if len(s.Player.Hand) != rules.OpeningHand {
		t.Errorf("hand size changed: %d", len(s.Player.Hand))
	}
	if s.Player.Hand[1] != kept {
		t.Errorf("unselected card replaced: %d -> %d", kept, s.Player.Hand[1])
	}
	for i, id := range before {
		if s.Opponent.Hand[i] != id {
			t.Errorf("opponent hand changed at %d with empty selection", i)
		}
	}
	if s.PlayerMulliganCards != nil || s.OpponentMulliganCards != nil {
		t.Error("selections not cleared after execute")
	}
	if s.CurrentTurn != RolePlayer || s.Timer != rules.TurnSeconds {
		t.Errorf("battle not handed to first-attack seat: turn=%s timer=%d", s.CurrentTurn, s.Timer)
	}
}

func TestMulliganOutsidePhaseIsNoop(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	s.SetMulliganSelection(RolePlayer, []int{0})
	if s.PlayerMulliganDone || s.PlayerMulliganCards != nil {
		t.Error("selection recorded outside the mulligan phase")
	}
	hand := append([]int(nil), s.Player.Hand...)
	s.ExecuteMulligan(seeded(1), rules)
	for i, id := range hand {
		if s.Player.Hand[i] != id {
			t.Error("execute outside the phase touched the hand")
		}
	}
}
