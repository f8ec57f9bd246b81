package server

import (
	"encoding/json"

	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Handle applies one inbound frame from a client. Spectators may only ping;
// anything that fails validation is acknowledged as declined, matching the
// silent no-op semantics of the engine.
func (r *Room) Handle(c *client, raw []byte) {
	var msg protocol.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.send(r.encode(protocol.ServerMessage{Type: protocol.TypeError, Message: "malformed frame"}))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Type {
	case protocol.TypePing:
		c.send(r.encode(protocol.ServerMessage{Type: protocol.TypePong}))

	case protocol.TypeAction:
		if !c.role.Seated() {
			return
		}
		if msg.Action == protocol.ActionCursor {
			// Cursor updates ride the next realtime frame; no ack.
			if msg.Payload != nil {
				r.cursors[c.role] = *msg.Payload
			}
			return
		}
		ok := r.applyAction(c.role, msg)
		c.send(r.encode(protocol.ServerMessage{Type: protocol.TypeAck, Action: msg.Action, OK: ok}))
		if ok {
			r.broadcastState()
		}

	default:
		c.send(r.encode(protocol.ServerMessage{Type: protocol.TypeError, Message: "unexpected message type"}))
	}
}

// applyAction runs one seat's action against the room state. Callers hold
// the lock.
func (r *Room) applyAction(role match.Role, msg protocol.ClientMessage) bool {
	st := r.state
	now := r.now()

	switch msg.Action {
	case protocol.ActionStart:
		// Matches start when the second seat joins; an explicit start is
		// accepted but redundant.
		return st.Started

	case protocol.ActionPlayCard:
		return msg.Play != nil && st.PlayCard(role, msg.Play.HandIndex, r.rules)

	case protocol.ActionEndTurn:
		if !st.Started || st.IsGameOver || st.IsMulliganPhase || st.CurrentTurn != role {
			return false
		}
		st.SwitchTurn(r.rules)
		return true

	case protocol.ActionSneakGrave:
		return msg.Play != nil && st.SneakToGrave(role, msg.Play.HandIndex, now, r.rules)

	case protocol.ActionSneakDiscard:
		return msg.Play != nil && st.SneakDiscard(role, msg.Play.HandIndex, now, r.rules)

	case protocol.ActionDestroyDemo:
		return msg.Play != nil && st.DestroyOpponentField(role, msg.Play.FieldIndex, now, r.rules)

	case protocol.ActionCheat:
		return msg.Cheat != nil && st.ApplyCheat(role, msg.Cheat.CheatType, msg.Cheat.Data, now, r.rng, r.rules)

	case protocol.ActionAccuse:
		if msg.Accuse == nil {
			return false
		}
		var target *match.CheatEntry
		if msg.Accuse.Index >= 0 {
			target = &match.CheatEntry{TS: msg.Accuse.TS, Action: msg.Accuse.Action}
		}
		st.Accuse(role, target, now, r.rules)
		return true

	case protocol.ActionMulligan:
		if msg.Mulligan == nil || !st.IsMulliganPhase {
			return false
		}
		st.SetMulliganSelection(role, msg.Mulligan.CardIndices)
		if st.BothMulliganDone() {
			st.ExecuteMulligan(r.rng, r.rules)
		}
		return true

	default:
		return false
	}
}
