package transport

import (
	"encoding/json"
	"fmt"

	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Handler receives inbound protocol messages. The session implements it;
// both transports feed it, so the session never learns which one it has.
type Handler interface {
	HandleHello(role match.Role, roomID string)
	HandleState(st *match.State)
	HandleRealtime(f protocol.RealtimeFrame)
	HandleCursors(cursors map[string]protocol.CursorPayload)
	HandleSystem(message string)
	HandleAck(action string, ok bool)
	HandleError(message string)
	HandleClosed(reason string)
}

// Dispatch decodes one wire frame and routes it. A decode failure or an
// unknown type is a protocol error, reported to the caller rather than the
// handler so the read loop decides how fatal it is.
func Dispatch(h Handler, raw []byte) error {
	var msg protocol.ServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	switch msg.Type {
	case protocol.TypeHello:
		h.HandleHello(msg.Role, msg.RoomID)
	case protocol.TypeState:
		h.HandleState(msg.State)
	case protocol.TypeRealtime:
		h.HandleRealtime(msg.Clocks())
		if len(msg.Cursors) > 0 {
			h.HandleCursors(msg.Cursors)
		}
	case protocol.TypeSystem:
		h.HandleSystem(msg.Message)
	case protocol.TypeAck:
		h.HandleAck(msg.Action, msg.OK)
	case protocol.TypeError:
		h.HandleError(msg.Message)
	case protocol.TypePong:
		// keepalive, nothing to do
	default:
		return fmt.Errorf("unexpected message type %q", msg.Type)
	}
	return nil
}
