package match

import (
	"math/rand"
	"time"

	"ikasama/internal/config"
)

// Server-honored cheat set. Every branch logs a CheatEntry attributed to the
// acting seat; the log is the sole evidence source for accusation.
const (
	CheatSummonOwn          = "summon-own"
	CheatDestroyOpponent    = "destroy-opponent"
	CheatStealOpponent      = "steal-opponent"
	CheatAddOwnHand         = "add-own-hand"
	CheatRemoveOwnHand      = "remove-own-hand"
	CheatAddOpponentHand    = "add-opponent-hand"
	CheatRemoveOpponentHand = "remove-opponent-hand"
	CheatModifyHP           = ActionModifyHP
	CheatModifyMana         = ActionModifyMana
)

// ApplyCheat performs one covert action of the given type for role. Unknown
// types are rejected; everything else commits and is logged even when the
// targeted slot turns out to be empty (the attempt itself is the cheat).
func (s *State) ApplyCheat(role Role, cheatType string, data map[string]any, now time.Time, rng *rand.Rand, rules config.Rules) bool {
	if !s.actionable() || !role.Seated() {
		return false
	}
	side := s.SideOf(role)
	enemy := s.SideOf(role.Other())

	switch cheatType {
	case CheatSummonOwn:
		idx := intField(data, "handIndex")
		if idx >= 0 && idx < len(side.Hand) {
			id := side.Hand[idx]
			side.Hand = append(side.Hand[:idx], side.Hand[idx+1:]...)
			side.Field = append(side.Field, id)
		}
		s.AppendCheat(role, cheatType, map[string]any{"handIndex": idx}, now, rules)

	case CheatDestroyOpponent:
		idx := intField(data, "fieldIndex")
		if idx >= 0 && idx < len(enemy.Field) {
			enemy.Field = append(enemy.Field[:idx], enemy.Field[idx+1:]...)
		}
		s.AppendCheat(role, cheatType, map[string]any{"fieldIndex": idx}, now, rules)

	case CheatStealOpponent:
		idx := intField(data, "fieldIndex")
		if idx >= 0 && idx < len(enemy.Field) {
			id := enemy.Field[idx]
			enemy.Field = append(enemy.Field[:idx], enemy.Field[idx+1:]...)
			side.Field = append(side.Field, id)
		}
		s.AppendCheat(role, cheatType, map[string]any{"fieldIndex": idx}, now, rules)

	case CheatAddOwnHand:
		if len(s.Cards) > 0 {
			side.Hand = append(side.Hand, s.Cards[rng.Intn(len(s.Cards))].ID)
		}
		s.AppendCheat(role, cheatType, map[string]any{}, now, rules)

	case CheatRemoveOwnHand:
		if len(side.Hand) > 0 {
			side.Hand = side.Hand[:len(side.Hand)-1]
		}
		s.AppendCheat(role, cheatType, map[string]any{}, now, rules)

	case CheatAddOpponentHand:
		if len(s.Cards) > 0 {
			enemy.Hand = append(enemy.Hand, s.Cards[rng.Intn(len(s.Cards))].ID)
		}
		s.AppendCheat(role, cheatType, map[string]any{}, now, rules)

	case CheatRemoveOpponentHand:
		if len(enemy.Hand) > 0 {
			enemy.Hand = enemy.Hand[:len(enemy.Hand)-1]
		}
		s.AppendCheat(role, cheatType, map[string]any{}, now, rules)

	case CheatModifyHP:
		target, delta := targetSide(s, role, data)
		target.HP += delta
		s.AppendCheat(role, cheatType, map[string]any{"target": stringField(data, "target"), "delta": delta}, now, rules)

	case CheatModifyMana:
		target, delta := targetSide(s, role, data)
		target.Mana += delta
		if target.Mana < 0 {
			target.Mana = 0
		}
		if target.Mana > target.MaxMana {
			target.MaxMana = target.Mana
		}
		s.AppendCheat(role, cheatType, map[string]any{"target": stringField(data, "target"), "delta": delta}, now, rules)

	default:
		return false
	}

	s.CheckGameOver(rules)
	return true
}

func targetSide(s *State, role Role, data map[string]any) (*Side, int) {
	delta := intField(data, "delta")
	if stringField(data, "target") == "opponent" {
		return s.SideOf(role.Other()), delta
	}
	return s.SideOf(role), delta
}

// intField reads an integer out of a decoded JSON object. JSON numbers
// arrive as float64.
func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return "self"
}
