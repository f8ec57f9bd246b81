package present

import (
	"fmt"

	"ikasama/internal/match"
)

// View is a perspective-relative projection of the match state: "mine" is
// always the local seat regardless of which Side it maps to on the wire.
type View struct {
	Mine   SideView
	Theirs SideView

	MyTurn     bool
	TurnLabel  string
	TimerLabel string
	Result     string // empty until game over
}

// SideView is one half of the table, resolved through the catalog snapshot.
type SideView struct {
	HP      int
	Mana    int
	MaxMana int
	Deck    int
	Penalty int
	Hand    []CardView
	Field   []CardView
	Grave   []CardView
}

type CardView struct {
	ID    int
	Name  string
	Cost  int
	Power int
	Tough int
}

// Project builds the view for myRole. Unknown card ids resolve to the
// placeholder, so the projection never fails.
func Project(s *match.State, myRole match.Role) View {
	if !myRole.Seated() {
		myRole = match.RolePlayer
	}
	v := View{
		Mine:   projectSide(s, s.SideOf(myRole)),
		Theirs: projectSide(s, s.SideOf(myRole.Other())),
		MyTurn: s.CurrentTurn == myRole,
	}
	if v.MyTurn {
		v.TurnLabel = "Your turn"
	} else {
		v.TurnLabel = "Opponent's turn"
	}
	if s.IsMulliganPhase {
		v.TurnLabel = "Mulligan"
		v.TimerLabel = fmt.Sprintf("%ds", s.MulliganTimer)
	} else {
		v.TimerLabel = fmt.Sprintf("%ds", s.Timer)
	}
	if s.IsGameOver {
		switch s.Winner {
		case myRole:
			v.Result = "You win"
		case myRole.Other():
			v.Result = "You lose"
		default:
			v.Result = "Draw"
		}
	}
	return v
}

func projectSide(s *match.State, side *match.Side) SideView {
	if side == nil {
		return SideView{}
	}
	return SideView{
		HP:      side.HP,
		Mana:    side.Mana,
		MaxMana: side.MaxMana,
		Deck:    side.Deck,
		Penalty: side.Penalty,
		Hand:    projectCards(s, side.Hand),
		Field:   projectCards(s, side.Field),
		Grave:   projectCards(s, side.Grave),
	}
}

func projectCards(s *match.State, ids []int) []CardView {
	out := make([]CardView, 0, len(ids))
	for _, id := range ids {
		c := s.Card(id)
		out = append(out, CardView{ID: id, Name: c.Name, Cost: c.Cost, Power: c.Power, Tough: c.Toughness})
	}
	return out
}
