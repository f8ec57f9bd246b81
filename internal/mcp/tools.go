package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// sessionRules is the rule set for new sessions, set by main.
var sessionRules = config.Default()

// sessionCatalog is the card catalog for new sessions, set by main.
var sessionCatalog = catalog.Default()

// SetRules sets the rule set used by start_match.
func SetRules(r config.Rules) {
	sessionRules = r
}

// SetCatalog sets the card catalog used by start_match.
func SetCatalog(c *catalog.Catalog) {
	sessionCatalog = c
}

// RegisterTools adds all match tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), handleStartMatch)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(mulliganTool(), handleMulligan)
	s.AddTool(sneakToGraveTool(), handleSneakToGrave)
	s.AddTool(sneakDiscardTool(), handleSneakDiscard)
	s.AddTool(destroyFieldTool(), handleDestroyField)
	s.AddTool(cheatTool(), handleCheat)
	s.AddTool(openAccuseTool(), handleOpenAccuse)
	s.AddTool(accuseTool(), handleAccuse)
	s.AddTool(cancelAccuseTool(), handleCancelAccuse)
	s.AddTool(advanceSecondsTool(), handleAdvanceSeconds)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new offline match against the scripted opponent. "+
			"The match opens in the mulligan phase; use the mulligan tool to keep or swap "+
			"opening-hand cards. Clocks only advance through advance_seconds."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current match state, phase, and accumulated events without acting. Read-only."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand onto your field. Costs the card's mana and only works on your turn."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into your hand")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. The scripted opponent takes its turn immediately and play returns to you."),
	)
}

func mulliganTool() mcp.Tool {
	return mcp.NewTool("mulligan",
		mcp.WithDescription("Confirm your mulligan selection. Selected cards are returned to the deck and redrawn. "+
			"Only valid during the mulligan phase."),
		mcp.WithString("indices", mcp.Description("Space-separated 0-based hand indices to swap (e.g. '0 2'), or empty to keep the hand")),
	)
}

func sneakToGraveTool() mcp.Tool {
	return mcp.NewTool("sneak_to_grave",
		mcp.WithDescription("Cheat: slide a card from your hand to your grave without paying its cost. "+
			"Works off-turn. Logged to the hidden cheat log, so the opponent may accuse you."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into your hand")),
	)
}

func sneakDiscardTool() mcp.Tool {
	return mcp.NewTool("sneak_discard",
		mcp.WithDescription("Cheat: discard a card from your hand entirely. Works off-turn. "+
			"Logged to the hidden cheat log, so the opponent may accuse you."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into your hand")),
	)
}

func destroyFieldTool() mcp.Tool {
	return mcp.NewTool("destroy_field",
		mcp.WithDescription("Cheat: destroy one of the opponent's field cards. Works off-turn. "+
			"Logged to the hidden cheat log, so the opponent may accuse you."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the opponent's field")),
	)
}

func cheatTool() mcp.Tool {
	return mcp.NewTool("cheat",
		mcp.WithDescription("Perform a named cheat. Types: summon-own, destroy-opponent, steal-opponent, "+
			"add-own-hand, remove-own-hand, add-opponent-hand, remove-opponent-hand, modify-hp, modify-mana. "+
			"All cheats are logged to the hidden cheat log."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Cheat type name")),
		mcp.WithString("target", mcp.Description("'self' or 'opponent' for modify-hp / modify-mana (default 'self')")),
		mcp.WithNumber("delta", mcp.Description("Signed amount for modify-hp / modify-mana")),
		mcp.WithNumber("index", mcp.Description("0-based slot index for cheats that pick a card")),
	)
}

func openAccuseTool() mcp.Tool {
	return mcp.NewTool("open_accuse",
		mcp.WithDescription("Open the accusation window. Returns the opponent's recent cheat log entries. "+
			"The window closes after the accuse timer runs out (advance_seconds ticks it)."),
	)
}

func accuseTool() mcp.Tool {
	return mcp.NewTool("accuse",
		mcp.WithDescription("Accuse the opponent of a listed cheat. A hit penalizes the opponent; "+
			"a miss, or index -1, penalizes you instead. Closes the window."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the accusal list, or -1 to withdraw with penalty")),
	)
}

func cancelAccuseTool() mcp.Tool {
	return mcp.NewTool("cancel_accuse",
		mcp.WithDescription("Close the accusation window without accusing. No penalty."),
	)
}

func advanceSecondsTool() mcp.Tool {
	return mcp.NewTool("advance_seconds",
		mcp.WithDescription("Advance the match clocks by whole seconds. Drives the turn timer, the mulligan "+
			"timer, and the accuse timer; an expired turn timer passes the turn to the opponent."),
		mcp.WithNumber("seconds", mcp.Required(), mcp.Description("Number of one-second ticks to apply (1-600)")),
	)
}

// --- Tool handlers ---

func handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		if s := activeSession.sess.Store().Snapshot(); s == nil || !s.IsGameOver {
			return mcp.NewToolResultError("A match is already running. Only one match at a time is supported."), nil
		}
		activeSession.Close()
		activeSession = nil
	}

	activeSession = NewGameSession(sessionRules, sessionCatalog)

	return mcp.NewToolResultText(respondJSON(activeSession.snapshot())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index must be >= 0"), nil
	}

	gs.sess.PlayCard(index)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	gs.sess.EndTurn()
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleMulligan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	indicesStr := request.GetString("indices", "")
	var indices []int
	if strings.TrimSpace(indicesStr) != "" {
		for _, p := range strings.Fields(indicesStr) {
			idx, err := strconv.Atoi(p)
			if err != nil {
				return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
			}
			indices = append(indices, idx)
		}
	}

	gs.sess.ConfirmMulligan(indices)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleSneakToGrave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index must be >= 0"), nil
	}

	gs.sess.SneakToGrave(index)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleSneakDiscard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index must be >= 0"), nil
	}

	gs.sess.SneakDiscard(index)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleDestroyField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index must be >= 0"), nil
	}

	gs.sess.DestroyOpponentField(index)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleCheat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	cheatType := request.GetString("type", "")
	if !validCheatType(cheatType) {
		return mcp.NewToolResultErrorf("Unknown cheat type '%s'.", cheatType), nil
	}

	data := map[string]any{}
	if target := request.GetString("target", ""); target != "" {
		data["target"] = target
	}
	if delta := request.GetInt("delta", 0); delta != 0 {
		data["delta"] = delta
	}
	if index := request.GetInt("index", -1); index >= 0 {
		if key := cheatIndexKey(cheatType); key != "" {
			data[key] = index
		}
	}

	gs.sess.Cheat(cheatType, data)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleOpenAccuse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	gs.sess.OpenAccuse()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleAccuse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	if !gs.sess.AccuseOpen() {
		return mcp.NewToolResultError("The accusation window is not open. Use open_accuse first."), nil
	}

	index := request.GetInt("index", -1)
	gs.sess.Accuse(index)
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleCancelAccuse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	gs.sess.CancelAccuse()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

func handleAdvanceSeconds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gs := activeSession
	if gs == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}

	seconds := request.GetInt("seconds", 0)
	if seconds < 1 || seconds > 600 {
		return mcp.NewToolResultError("seconds must be between 1 and 600"), nil
	}

	for i := 0; i < seconds; i++ {
		gs.sess.TickSecond()
	}
	gs.off.Drain()

	return mcp.NewToolResultText(respondJSON(gs.snapshot())), nil
}

// cheatIndexKey maps the tool's generic index argument onto the key the
// engine reads for the slot-picking cheats. The rest take no index.
func cheatIndexKey(cheatType string) string {
	switch cheatType {
	case match.CheatSummonOwn:
		return "handIndex"
	case match.CheatDestroyOpponent, match.CheatStealOpponent:
		return "fieldIndex"
	}
	return ""
}

func validCheatType(t string) bool {
	switch t {
	case match.CheatSummonOwn, match.CheatDestroyOpponent, match.CheatStealOpponent,
		match.CheatAddOwnHand, match.CheatRemoveOwnHand,
		match.CheatAddOpponentHand, match.CheatRemoveOpponentHand,
		match.CheatModifyHP, match.CheatModifyMana:
		return true
	}
	return false
}
