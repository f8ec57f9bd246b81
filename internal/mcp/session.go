package mcp

import (
	"encoding/json"
	"fmt"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/session"
	"ikasama/internal/transport"
)

// GameSession is one offline match driven through MCP tools: the agent sits
// in the player seat against the scripted opponent. The per-second clocks
// only advance through the advance_seconds tool, so the agent sets the pace.
type GameSession struct {
	sess   *session.Session
	off    *transport.Offline
	logger *log.MemoryLogger
	rules  config.Rules

	// events already reported to the agent
	reported int
}

// NewGameSession wires a session to the offline simulator and starts the
// match.
func NewGameSession(rules config.Rules, cat *catalog.Catalog) *GameSession {
	logger := log.NewMemoryLogger()
	sess := session.New(rules, session.Options{Logger: logger})
	off := transport.NewOffline(sess, rules, cat, transport.OfflineOptions{})
	sess.Attach(off, true)
	off.Open()

	gs := &GameSession{sess: sess, off: off, logger: logger, rules: rules}
	gs.sess.StartMatch()
	gs.off.Drain()
	return gs
}

// Close tears the simulated transport down.
func (gs *GameSession) Close() {
	gs.off.Close()
}

// ToolResponse is the JSON envelope returned by every tool.
type ToolResponse struct {
	Phase    string             `json:"phase"`
	Role     string             `json:"role"`
	State    *match.State       `json:"state,omitempty"`
	Accusals []match.CheatEntry `json:"accusals,omitempty"`
	Events   []string           `json:"events,omitempty"`
	GameOver bool               `json:"gameOver"`
	Winner   string             `json:"winner,omitempty"`
}

// snapshot builds the response after the simulator has drained.
func (gs *GameSession) snapshot() *ToolResponse {
	resp := &ToolResponse{
		Phase: gs.sess.Phase().String(),
		Role:  gs.sess.Role().String(),
		State: gs.sess.Store().Snapshot(),
	}
	if gs.sess.AccuseOpen() {
		resp.Accusals = gs.sess.AccuseEntries()
	}
	if resp.State != nil && resp.State.IsGameOver {
		resp.GameOver = true
		resp.Winner = resp.State.Winner.String()
	}

	events := gs.logger.Events()
	for _, e := range events[gs.reported:] {
		resp.Events = append(resp.Events, log.FormatEvent(e))
	}
	gs.reported = len(events)
	return resp
}

func respondJSON(resp *ToolResponse) string {
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(raw)
}
