package match

import (
	"ikasama/internal/catalog"
)

// Role identifies a seat in the match.
type Role string

const (
	RolePlayer   Role = "player"
	RoleOpponent Role = "opponent"
	// RoleNone is the zero role: no winner yet, or no seat assigned.
	RoleNone Role = ""
)

// Other returns the opposing seat.
func (r Role) Other() Role {
	switch r {
	case RolePlayer:
		return RoleOpponent
	case RoleOpponent:
		return RolePlayer
	default:
		return RoleNone
	}
}

// Seated reports whether r names an actual seat.
func (r Role) Seated() bool {
	return r == RolePlayer || r == RoleOpponent
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// Side is one player's half of the table.
type Side struct {
	HP      int   `json:"hp"`
	Mana    int   `json:"mana"`
	MaxMana int   `json:"maxMana"`
	Hand    []int `json:"hand"`
	Field   []int `json:"field"`
	Deck    int   `json:"deck"` // count only; identities are hidden
	Grave   []int `json:"grave"`
	Penalty int   `json:"penalty"`
}

// CheatEntry records one covert action in the shared cheat log.
type CheatEntry struct {
	TS      float64        `json:"ts"` // epoch seconds
	By      Role           `json:"by"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// Covert action tags. The accuse entry itself is also logged.
const (
	ActionSneakGrave          = "sneak-grave"
	ActionSneakDiscard        = "sneak-discard"
	ActionDestroyOpponentDemo = "destroy-opponent-demo"
	ActionModifyHP            = "modify-hp"
	ActionModifyMana          = "modify-mana"
	ActionAccuse              = "accuse"
)

// State is the single mutable snapshot of a match. It is replaced wholesale
// on each authoritative update, or mutated in place under offline simulation.
// Field names and JSON tags follow the wire shape.
type State struct {
	RoomID      string `json:"roomId"`
	Started     bool   `json:"started"`
	CurrentTurn Role   `json:"currentTurn"`
	Timer       int    `json:"timer"`
	IsGameOver  bool   `json:"isGameOver"`
	Winner      Role   `json:"winner,omitempty"`

	IsMulliganPhase bool `json:"isMulliganPhase"`
	MulliganTimer   int  `json:"mulliganTimer"`
	FirstAttackRole Role `json:"firstAttackRole,omitempty"`

	// Mulligan bookkeeping, exchanged with the server during the phase.
	PlayerMulliganDone    bool  `json:"playerMulliganDone,omitempty"`
	OpponentMulliganDone  bool  `json:"opponentMulliganDone,omitempty"`
	PlayerMulliganCards   []int `json:"playerMulliganCards,omitempty"`
	OpponentMulliganCards []int `json:"opponentMulliganCards,omitempty"`

	Player   Side `json:"player"`
	Opponent Side `json:"opponent"`

	// Catalog snapshot accompanying this state.
	Cards []catalog.Card `json:"cards"`

	CheatLog []CheatEntry `json:"cheatLog"`
}

// SideOf returns the half of the table owned by role, or nil for RoleNone.
func (s *State) SideOf(role Role) *Side {
	switch role {
	case RolePlayer:
		return &s.Player
	case RoleOpponent:
		return &s.Opponent
	default:
		return nil
	}
}

// Card looks up a card id in the state's catalog snapshot; unknown ids yield
// the placeholder definition so rendering and rules never halt.
func (s *State) Card(id int) catalog.Card {
	return catalog.LookupIn(s.Cards, id)
}
