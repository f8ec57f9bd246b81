package match

import (
	"math/rand"
	"time"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
)

// Opponent is the scripted seat used in offline play. Randomness and the
// clock are injected so scenarios can fix both.
type Opponent struct {
	Role Role
	Rng  *rand.Rand
	Now  func() time.Time
}

func NewOpponent(rng *rand.Rand, now func() time.Time) *Opponent {
	return &Opponent{Role: RoleOpponent, Rng: rng, Now: now}
}

// StepResult describes what the scripted seat did in one turn step.
type StepResult struct {
	Played  *catalog.Card
	Cheated string // action tag, "" when honest
}

// Step takes the scripted seat's turn actions on s. With the configured
// probability it plays the first card in hand it can afford; independently,
// with the cheat probability, it commits one covert stat nudge against the
// human seat. The step never ends the turn, that stays with the clock.
func (o *Opponent) Step(s *State, rules config.Rules) StepResult {
	var res StepResult
	if !s.Started || s.IsGameOver || s.IsMulliganPhase || s.CurrentTurn != o.Role {
		return res
	}

	if o.Rng.Float64() < rules.OpponentPlayChance {
		side := s.SideOf(o.Role)
		for i, id := range side.Hand {
			if s.Card(id).Cost <= side.Mana {
				if s.PlayCard(o.Role, i, rules) {
					c := s.Card(id)
					res.Played = &c
				}
				break
			}
		}
	}

	if o.Rng.Float64() < rules.OpponentCheatChance {
		action := ActionModifyHP
		if o.Rng.Intn(2) == 1 {
			action = ActionModifyMana
		}
		data := map[string]any{"target": "opponent", "delta": -1}
		if s.ApplyCheat(o.Role, action, data, o.Now(), o.Rng, rules) {
			res.Cheated = action
		}
	}

	return res
}
