package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
)

func TestGameSessionLifecycle(t *testing.T) {
	gs := NewGameSession(config.Default(), catalog.Default())
	defer gs.Close()

	resp := gs.snapshot()
	require.Equal(t, "mulligan", resp.Phase)
	require.Equal(t, "player", resp.Role)
	require.NotNil(t, resp.State)
	require.True(t, resp.State.Started)
	require.Len(t, resp.State.Player.Hand, config.Default().OpeningHand)
	require.NotEmpty(t, resp.Events)

	// a second snapshot only reports events logged since the first
	again := gs.snapshot()
	require.Empty(t, again.Events)
}

func TestGameSessionMulliganIntoBattle(t *testing.T) {
	gs := NewGameSession(config.Default(), catalog.Default())
	defer gs.Close()

	gs.sess.ConfirmMulligan(nil)
	gs.off.Drain()

	resp := gs.snapshot()
	require.Equal(t, "battle", resp.Phase)
	require.False(t, resp.State.IsMulliganPhase)
}

func TestCheatToolPicksTheNamedSlot(t *testing.T) {
	gs := NewGameSession(config.Default(), catalog.Default())
	defer gs.Close()
	activeSession = gs
	defer func() { activeSession = nil }()

	gs.sess.ConfirmMulligan(nil)
	gs.off.Drain()

	before := gs.sess.Store().Snapshot()
	want := before.Player.Hand[1]

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"type": match.CheatSummonOwn, "index": 1}
	res, err := handleCheat(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	after := gs.sess.Store().Snapshot()
	require.Len(t, after.Player.Hand, len(before.Player.Hand)-1)
	require.Equal(t, want, after.Player.Field[len(after.Player.Field)-1])
	entry := after.CheatLog[len(after.CheatLog)-1]
	require.EqualValues(t, 1, entry.Payload["handIndex"])
}

func TestCheatIndexKeyPerType(t *testing.T) {
	require.Equal(t, "handIndex", cheatIndexKey(match.CheatSummonOwn))
	require.Equal(t, "fieldIndex", cheatIndexKey(match.CheatDestroyOpponent))
	require.Equal(t, "fieldIndex", cheatIndexKey(match.CheatStealOpponent))
	require.Equal(t, "", cheatIndexKey(match.CheatAddOwnHand))
}
