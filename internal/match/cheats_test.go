package match

import (
	"testing"

	"ikasama/internal/config"
)

func TestApplyCheatSummonOwn(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	id := s.Opponent.Hand[1]

	ok := s.ApplyCheat(RoleOpponent, CheatSummonOwn, map[string]any{"handIndex": float64(1)}, fixedNow(), seeded(1), rules)
	if !ok {
		t.Fatal("expected cheat to commit")
	}
	if len(s.Opponent.Field) != 1 || s.Opponent.Field[0] != id {
		t.Errorf("field = %v, want [%d]", s.Opponent.Field, id)
	}
	if len(s.CheatLog) != 1 || s.CheatLog[0].Action != CheatSummonOwn {
		t.Errorf("cheat log = %v", s.CheatLog)
	}
}

func TestApplyCheatStealOpponent(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	s.Player.Field = []int{4}

	s.ApplyCheat(RoleOpponent, CheatStealOpponent, map[string]any{"fieldIndex": float64(0)}, fixedNow(), seeded(1), rules)

	if len(s.Player.Field) != 0 {
		t.Errorf("victim field = %v, want empty", s.Player.Field)
	}
	if len(s.Opponent.Field) != 1 || s.Opponent.Field[0] != 4 {
		t.Errorf("thief field = %v, want [4]", s.Opponent.Field)
	}
}

func TestApplyCheatHandManipulation(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)
	rng := seeded(7)

	s.ApplyCheat(RolePlayer, CheatAddOwnHand, nil, fixedNow(), rng, rules)
	if len(s.Player.Hand) != rules.OpeningHand+1 {
		t.Errorf("hand = %d, want %d", len(s.Player.Hand), rules.OpeningHand+1)
	}
	s.ApplyCheat(RolePlayer, CheatRemoveOpponentHand, nil, fixedNow(), rng, rules)
	if len(s.Opponent.Hand) != rules.OpeningHand-1 {
		t.Errorf("enemy hand = %d, want %d", len(s.Opponent.Hand), rules.OpeningHand-1)
	}
	s.ApplyCheat(RolePlayer, CheatAddOpponentHand, nil, fixedNow(), rng, rules)
	s.ApplyCheat(RolePlayer, CheatRemoveOwnHand, nil, fixedNow(), rng, rules)
	if len(s.CheatLog) != 4 {
		t.Errorf("cheat log entries = %d, want 4", len(s.CheatLog))
	}
}

func TestApplyCheatModifyStats(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	s.ApplyCheat(RoleOpponent, CheatModifyHP, map[string]any{"target": "opponent", "delta": float64(-2)}, fixedNow(), seeded(1), rules)
	if s.Player.HP != rules.StartingHP-2 {
		t.Errorf("victim hp = %d, want %d", s.Player.HP, rules.StartingHP-2)
	}

	s.ApplyCheat(RolePlayer, CheatModifyMana, map[string]any{"target": "self", "delta": float64(5)}, fixedNow(), seeded(1), rules)
	if s.Player.Mana != rules.StartingMana+5 {
		t.Errorf("mana = %d, want %d", s.Player.Mana, rules.StartingMana+5)
	}
	if s.Player.MaxMana < s.Player.Mana {
		t.Error("max mana not raised with mana")
	}

	s.ApplyCheat(RolePlayer, CheatModifyMana, map[string]any{"target": "self", "delta": float64(-100)}, fixedNow(), seeded(1), rules)
	if s.Player.Mana != 0 {
		t.Errorf("mana = %d, want floor at 0", s.Player.Mana)
	}
}

func TestApplyCheatHPCanEndGame(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	s.ApplyCheat(RoleOpponent, CheatModifyHP, map[string]any{"target": "opponent", "delta": float64(-rules.StartingHP)}, fixedNow(), seeded(1), rules)
	if !s.IsGameOver || s.Winner != RoleOpponent {
		t.Errorf("game over = %v winner = %s", s.IsGameOver, s.Winner)
	}
}

func TestApplyCheatUnknownType(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	if s.ApplyCheat(RolePlayer, "teleport", nil, fixedNow(), seeded(1), rules) {
		t.Error("unknown cheat type should be rejected")
	}
	if len(s.CheatLog) != 0 {
		t.Error("rejected cheat must not be logged")
	}
}

func TestApplyCheatEmptySlotStillLogged(t *testing.T) {
	rules := config.Default()
	s := battleState(rules)

	// Nothing on the enemy field, yet the attempt goes in the log.
	ok := s.ApplyCheat(RolePlayer, CheatDestroyOpponent, map[string]any{"fieldIndex": float64(0)}, fixedNow(), seeded(1), rules)
	if !ok {
		t.Fatal("attempt on empty slot should still commit")
	}
	if len(s.CheatLog) != 1 {
		t.Error("attempt on empty slot should still be logged")
	}
}
