package match

import (
	"time"

	"ikasama/internal/config"
)

// Mutation operations. Every operation validates before touching any field
// and reports whether it committed; a false return means nothing changed.
// Validation failures are deliberate no-ops, not errors: an attempted action
// that does not apply is simply declined.

// actionable reports whether any mutation may run at all.
func (s *State) actionable() bool {
	return s.Started && !s.IsGameOver
}

// PlayCard moves the card at handIndex from role's hand to its field, paying
// the mana cost. Requires the turn and sufficient mana.
func (s *State) PlayCard(role Role, handIndex int, rules config.Rules) bool {
	if !s.actionable() || s.CurrentTurn != role {
		return false
	}
	side := s.SideOf(role)
	if side == nil || handIndex < 0 || handIndex >= len(side.Hand) {
		return false
	}
	card := s.Card(side.Hand[handIndex])
	if side.Mana < card.Cost {
		return false
	}
	side.Mana -= card.Cost
	id := side.Hand[handIndex]
	side.Hand = append(side.Hand[:handIndex], side.Hand[handIndex+1:]...)
	side.Field = append(side.Field, id)
	s.CheckGameOver(rules)
	return true
}

// SneakToGrave moves the card at handIndex straight to role's grave with no
// cost check. Covert: allowed regardless of turn, always logged.
func (s *State) SneakToGrave(role Role, handIndex int, now time.Time, rules config.Rules) bool {
	if !s.actionable() {
		return false
	}
	side := s.SideOf(role)
	if side == nil || handIndex < 0 || handIndex >= len(side.Hand) {
		return false
	}
	id := side.Hand[handIndex]
	side.Hand = append(side.Hand[:handIndex], side.Hand[handIndex+1:]...)
	side.Grave = append(side.Grave, id)
	s.AppendCheat(role, ActionSneakGrave, map[string]any{"from": "hand", "handIndex": handIndex}, now, rules)
	s.CheckGameOver(rules)
	return true
}

// SneakDiscard removes the card at handIndex from role's hand entirely.
// Covert: the card vanishes, no destination.
func (s *State) SneakDiscard(role Role, handIndex int, now time.Time, rules config.Rules) bool {
	if !s.actionable() {
		return false
	}
	side := s.SideOf(role)
	if side == nil || handIndex < 0 || handIndex >= len(side.Hand) {
		return false
	}
	side.Hand = append(side.Hand[:handIndex], side.Hand[handIndex+1:]...)
	s.AppendCheat(role, ActionSneakDiscard, map[string]any{"from": "hand", "handIndex": handIndex}, now, rules)
	s.CheckGameOver(rules)
	return true
}

// DestroyOpponentField removes the card at fieldIndex from the enemy field.
// Demo covert action, logged.
func (s *State) DestroyOpponentField(role Role, fieldIndex int, now time.Time, rules config.Rules) bool {
	if !s.actionable() {
		return false
	}
	enemy := s.SideOf(role.Other())
	if enemy == nil || fieldIndex < 0 || fieldIndex >= len(enemy.Field) {
		return false
	}
	enemy.Field = append(enemy.Field[:fieldIndex], enemy.Field[fieldIndex+1:]...)
	s.AppendCheat(role, ActionDestroyOpponentDemo, map[string]any{"fieldIndex": fieldIndex}, now, rules)
	s.CheckGameOver(rules)
	return true
}

// Accuse resolves an accusation by role against target, which must be an
// entry returned by RecentCheatsBy. A nil target is a false accusation: the
// penalty lands on the accuser instead. Returns true if the accusation stuck.
func (s *State) Accuse(role Role, target *CheatEntry, now time.Time, rules config.Rules) bool {
	if !s.actionable() {
		return false
	}
	accuser := s.SideOf(role)
	if accuser == nil {
		return false
	}

	if target != nil {
		for _, e := range s.RecentCheatsBy(role.Other(), now, rules) {
			if e.TS == target.TS && e.Action == target.Action {
				s.SideOf(role.Other()).Penalty++
				s.AppendCheat(role, ActionAccuse, map[string]any{
					"targetTs":     e.TS,
					"targetAction": e.Action,
				}, now, rules)
				s.CheckGameOver(rules)
				return true
			}
		}
	}

	accuser.Penalty++
	s.CheckGameOver(rules)
	return false
}
