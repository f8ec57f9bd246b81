package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds every tunable the match engine reads. The values are gameplay
// configuration, not code: two historical builds of the game disagreed on the
// opponent cheat probability, so nothing here may be hardcoded at call sites.
type Rules struct {
	TurnSeconds     int `yaml:"turnSeconds"`
	MulliganSeconds int `yaml:"mulliganSeconds"`
	AccuseSeconds   int `yaml:"accuseSeconds"`
	MaxPenalty      int `yaml:"maxPenalty"`
	CheatLogCap     int `yaml:"cheatLogCap"`
	AccuseListCap   int `yaml:"accuseListCap"`

	StartingHP     int `yaml:"startingHP"`
	StartingMana   int `yaml:"startingMana"`
	StartingDeck   int `yaml:"startingDeck"`
	OpeningHand    int `yaml:"openingHand"`

	// Scripted opponent (offline mode only).
	OpponentPlayChance  float64 `yaml:"opponentPlayChance"`
	OpponentCheatChance float64 `yaml:"opponentCheatChance"`

	// Interaction surface.
	CursorSpeed float64 `yaml:"cursorSpeed"` // screen units per second
}

// Default returns the canonical rule set.
func Default() Rules {
	return Rules{
		TurnSeconds:         60,
		MulliganSeconds:     10,
		AccuseSeconds:       10,
		MaxPenalty:          3,
		CheatLogCap:         100,
		AccuseListCap:       10,
		StartingHP:          20,
		StartingMana:        3,
		StartingDeck:        10,
		OpeningHand:         3,
		OpponentPlayChance:  0.5,
		OpponentCheatChance: 0.35,
		CursorSpeed:         420,
	}
}

// Load reads a rules file and overlays it on the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Rules, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse rules YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	if r.TurnSeconds <= 0 {
		return fmt.Errorf("turnSeconds must be positive, got %d", r.TurnSeconds)
	}
	if r.MulliganSeconds <= 0 {
		return fmt.Errorf("mulliganSeconds must be positive, got %d", r.MulliganSeconds)
	}
	if r.AccuseSeconds <= 0 {
		return fmt.Errorf("accuseSeconds must be positive, got %d", r.AccuseSeconds)
	}
	if r.MaxPenalty <= 0 {
		return fmt.Errorf("maxPenalty must be positive, got %d", r.MaxPenalty)
	}
	if r.CheatLogCap <= 0 {
		return fmt.Errorf("cheatLogCap must be positive, got %d", r.CheatLogCap)
	}
	if r.OpponentPlayChance < 0 || r.OpponentPlayChance > 1 {
		return fmt.Errorf("opponentPlayChance must be in [0,1], got %v", r.OpponentPlayChance)
	}
	if r.OpponentCheatChance < 0 || r.OpponentCheatChance > 1 {
		return fmt.Errorf("opponentCheatChance must be in [0,1], got %v", r.OpponentCheatChance)
	}
	return nil
}
