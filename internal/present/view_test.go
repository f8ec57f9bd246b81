package present

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
)

func TestProjectPerspective(t *testing.T) {
	rules := config.Default()
	s := match.New("room-v", rules, catalog.Default())
	s.Start(match.RolePlayer, rules)
	s.EndMulligan(rules)
	s.Player.HP = 2
	s.Opponent.HP = 9

	// Seen from the opponent seat, "mine" is the opponent half and the
	// player's turn reads as theirs.
	v := Project(s, match.RoleOpponent)
	require.Equal(t, 9, v.Mine.HP)
	require.Equal(t, 2, v.Theirs.HP)
	require.False(t, v.MyTurn)
	require.Equal(t, "Opponent's turn", v.TurnLabel)

	v = Project(s, match.RolePlayer)
	require.True(t, v.MyTurn)
	require.Equal(t, "Your turn", v.TurnLabel)
	require.Empty(t, v.Result)
}

func TestProjectResolvesCards(t *testing.T) {
	rules := config.Default()
	s := match.New("room-v", rules, catalog.Default())
	s.Start(match.RolePlayer, rules)
	s.Player.Hand = append(s.Player.Hand, 9999)

	v := Project(s, match.RolePlayer)
	require.Len(t, v.Mine.Hand, rules.OpeningHand+1)
	require.Equal(t, "?", v.Mine.Hand[len(v.Mine.Hand)-1].Name)
	for _, c := range v.Mine.Hand[:rules.OpeningHand] {
		require.NotEmpty(t, c.Name)
	}
}

func TestProjectResultAndMulligan(t *testing.T) {
	rules := config.Default()
	s := match.New("room-v", rules, catalog.Default())
	s.Start(match.RolePlayer, rules)

	v := Project(s, match.RolePlayer)
	require.Equal(t, "Mulligan", v.TurnLabel)
	require.Equal(t, "10s", v.TimerLabel)

	s.EndMulligan(rules)
	s.Player.HP = 0
	s.CheckGameOver(rules)

	require.Equal(t, "You lose", Project(s, match.RolePlayer).Result)
	require.Equal(t, "You win", Project(s, match.RoleOpponent).Result)
}
