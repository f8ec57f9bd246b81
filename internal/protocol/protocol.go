package protocol

import "ikasama/internal/match"

// Message types for the JSON protocol over the match websocket. The same
// envelopes are produced by the offline simulator, so the session layer
// never knows which transport it is talking to.

// Server-to-client message types.
const (
	TypeHello    = "hello"
	TypeState    = "state"
	TypeRealtime = "realtime"
	TypeSystem   = "system"
	TypeAck      = "ack"
	TypeError    = "error"
	TypePong     = "pong"
)

// Client-to-server message types.
const (
	TypeAction = "action"
	TypePing   = "ping"
)

// Action names carried in an "action" message. The cursor broadcast rides
// the action envelope too, with its position under "payload".
const (
	ActionStart        = "start"
	ActionPlayCard     = "play-card"
	ActionEndTurn      = "end-turn"
	ActionCheat        = "cheat"
	ActionAccuse       = "accuse"
	ActionMulligan     = "mulligan"
	ActionSneakGrave   = "sneak-grave"
	ActionSneakDiscard = "sneak-discard"
	ActionDestroyDemo  = "destroy-opponent-demo"
	ActionCursor       = "cursor"
)

// SystemOpponentFound is the matchmaking notice the client watches for.
// The wire carries the Japanese text verbatim.
const SystemOpponentFound = "対戦相手が見つかりました"

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "hello"
	Role   match.Role `json:"role,omitempty"`
	RoomID string     `json:"roomId,omitempty"`

	// For "state"
	State *match.State `json:"state,omitempty"`

	// For "realtime": the clocks live at the top level of the frame, and
	// are pointers so an absent clock is distinguishable from a reading
	// of zero.
	Timer         *int                     `json:"timer,omitempty"`
	MulliganTimer *int                     `json:"mulliganTimer,omitempty"`
	CurrentTurn   match.Role               `json:"currentTurn,omitempty"`
	IsGameOver    bool                     `json:"isGameOver,omitempty"`
	Cursors       map[string]CursorPayload `json:"cursors,omitempty"`

	// For "system" and "error"
	Message string `json:"message,omitempty"`

	// For "ack"
	Action string `json:"action,omitempty"`
	OK     bool   `json:"ok,omitempty"`
}

// RealtimeFrame is the handler-facing reading of a "realtime" frame. A clock
// that is not running is -1 so zero stays meaningful.
type RealtimeFrame struct {
	Timer         int
	MulliganTimer int
	CurrentTurn   match.Role
	IsGameOver    bool
}

// Clocks extracts the realtime readings, mapping absent clocks to -1.
func (m *ServerMessage) Clocks() RealtimeFrame {
	f := RealtimeFrame{
		Timer:         -1,
		MulliganTimer: -1,
		CurrentTurn:   m.CurrentTurn,
		IsGameOver:    m.IsGameOver,
	}
	if m.Timer != nil {
		f.Timer = *m.Timer
	}
	if m.MulliganTimer != nil {
		f.MulliganTimer = *m.MulliganTimer
	}
	return f
}

// NewRealtimeMessage builds a "realtime" frame from clock readings. Negative
// readings are left off the wire.
func NewRealtimeMessage(f RealtimeFrame, cursors map[string]CursorPayload) ServerMessage {
	msg := ServerMessage{
		Type:        TypeRealtime,
		CurrentTurn: f.CurrentTurn,
		IsGameOver:  f.IsGameOver,
		Cursors:     cursors,
	}
	if f.Timer >= 0 {
		msg.Timer = &f.Timer
	}
	if f.MulliganTimer >= 0 {
		msg.MulliganTimer = &f.MulliganTimer
	}
	return msg
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Action string `json:"action,omitempty"`

	// Action payloads; exactly one is set, matching Action.
	Play     *PlayCardPayload `json:"play,omitempty"`
	Cheat    *CheatPayload    `json:"cheat,omitempty"`
	Accuse   *AccusePayload   `json:"accuse,omitempty"`
	Mulligan *MulliganPayload `json:"mulligan,omitempty"`

	// For the "cursor" action
	Payload *CursorPayload `json:"payload,omitempty"`
}

// PlayCardPayload names a hand slot for play-card and the sneak actions.
type PlayCardPayload struct {
	HandIndex  int `json:"handIndex"`
	FieldIndex int `json:"fieldIndex,omitempty"`
}

// CheatPayload carries one covert action for the server-honored cheat set.
type CheatPayload struct {
	CheatType string         `json:"cheatType"`
	Data      map[string]any `json:"data,omitempty"`
}

// AccusePayload points at one entry of the visible accuse list.
type AccusePayload struct {
	Index  int     `json:"index"`
	TS     float64 `json:"ts,omitempty"`
	Action string  `json:"action,omitempty"`
}

// MulliganPayload lists the opening-hand indices to exchange.
type MulliganPayload struct {
	CardIndices []int `json:"cardIndices"`
}

// CursorPayload mirrors one seat's cursor in normalized room coordinates.
type CursorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FirstAttackResponse is the body of POST /api/first_attack.
type FirstAttackResponse struct {
	First match.Role `json:"first"`
}
