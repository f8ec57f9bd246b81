package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")
)

// Registry tracks live rooms by id.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rules config.Rules
	cat   *catalog.Catalog
}

func NewRegistry(rules config.Rules, cat *catalog.Catalog) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		rules: rules,
		cat:   cat,
	}
}

// Create opens a new room, or returns the existing one for a known id. An
// empty or "new" id gets a generated one. The created flag tells the caller
// whether this call instantiated the room, so Run is started exactly once.
func (g *Registry) Create(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id == "" || id == "new" {
		id = uuid.NewString()
	}
	if r, ok := g.rooms[id]; ok {
		return r, false
	}
	r := newRoom(id, g.rules, g.cat, func() {
		g.mu.Lock()
		delete(g.rooms, id)
		g.mu.Unlock()
	})
	g.rooms[id] = r
	return r, true
}

// Lookup finds an existing room.
func (g *Registry) Lookup(id string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// client is one connected socket. send must not block; the transport layer
// buffers behind it.
type client struct {
	role match.Role
	send func([]byte)
}

// Room is one match: the authoritative state, its clients, and a one-second
// drive loop. All access goes through the room lock.
type Room struct {
	id      string
	mu      sync.Mutex
	rules   config.Rules
	state   *match.State
	clients []*client
	cursors map[match.Role]protocol.CursorPayload
	rng     *rand.Rand
	now     func() time.Time

	evict func()
	done  chan struct{}
	once  sync.Once
}

func newRoom(id string, rules config.Rules, cat *catalog.Catalog, evict func()) *Room {
	return &Room{
		id:      id,
		rules:   rules,
		state:   match.New(id, rules, cat),
		cursors: make(map[match.Role]protocol.CursorPayload),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		evict:   evict,
		done:    make(chan struct{}),
	}
}

// ID returns the room identifier.
func (r *Room) ID() string { return r.id }

// Join seats a client. The first two connections take the player and
// opponent seats; joiners past that are spectators when the mode allows, or
// rejected on a create. Seating the second player starts the match.
func (r *Room) Join(send func([]byte)) (*client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// First two connections take the seats; later joiners spectate with
	// the zero role once the match is underway.
	role := match.RoleNone
	switch {
	case !r.seated(match.RolePlayer):
		role = match.RolePlayer
	case !r.seated(match.RoleOpponent):
		role = match.RoleOpponent
	case !r.state.Started:
		return nil, ErrRoomFull
	}

	c := &client{role: role, send: send}
	r.clients = append(r.clients, c)

	c.send(r.encode(protocol.ServerMessage{Type: protocol.TypeHello, Role: role, RoomID: r.id}))

	if role == match.RoleOpponent && !r.state.Started {
		first := match.RolePlayer
		if r.rng.Intn(2) == 1 {
			first = match.RoleOpponent
		}
		r.state.Start(first, r.rules)
		r.broadcast(protocol.ServerMessage{Type: protocol.TypeSystem, Message: protocol.SystemOpponentFound})
	}
	r.broadcastState()
	return c, nil
}

// Leave drops a client. Losing a seated player forfeits an unfinished
// match; an empty room evicts itself from the registry.
func (r *Room) Leave(c *client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, other := range r.clients {
		if other == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			break
		}
	}

	if c.role.Seated() && r.state.Started && !r.state.IsGameOver {
		r.state.IsGameOver = true
		r.state.Winner = c.role.Other()
		r.broadcast(protocol.ServerMessage{Type: protocol.TypeSystem, Message: "opponent disconnected"})
		r.broadcastState()
	}

	if len(r.clients) == 0 {
		r.close()
	}
}

func (r *Room) seated(role match.Role) bool {
	for _, c := range r.clients {
		if c.role == role {
			return true
		}
	}
	return false
}

// Run drives the per-second loop until the room closes.
func (r *Room) Run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.tick()
		case <-r.done:
			return
		}
	}
}

func (r *Room) close() {
	r.once.Do(func() {
		close(r.done)
		if r.evict != nil {
			r.evict()
		}
	})
}

// tick advances the room clocks by one second and pushes a realtime frame.
func (r *Room) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state
	if !st.Started || st.IsGameOver {
		return
	}

	changed := false
	if st.IsMulliganPhase {
		if st.MulliganTimer > 0 {
			st.MulliganTimer--
		}
		if st.MulliganTimer <= 0 || st.BothMulliganDone() {
			st.MulliganTimer = 0
			st.ExecuteMulligan(r.rng, r.rules)
			changed = true
		}
	} else {
		if st.Timer > 0 {
			st.Timer--
		}
		if st.Timer <= 0 {
			st.Timer = 0
			st.SwitchTurn(r.rules)
			changed = true
		}
	}

	r.broadcast(protocol.NewRealtimeMessage(protocol.RealtimeFrame{
		Timer:         st.Timer,
		MulliganTimer: mulliganReading(st),
		CurrentTurn:   st.CurrentTurn,
		IsGameOver:    st.IsGameOver,
	}, r.cursorView()))
	if changed {
		r.broadcastState()
	}
}

func mulliganReading(st *match.State) int {
	if !st.IsMulliganPhase {
		return -1
	}
	return st.MulliganTimer
}

func (r *Room) cursorView() map[string]protocol.CursorPayload {
	if len(r.cursors) == 0 {
		return nil
	}
	out := make(map[string]protocol.CursorPayload, len(r.cursors))
	for role, c := range r.cursors {
		out[role.String()] = c
	}
	return out
}

// broadcast sends one frame to every client. Callers hold the lock.
func (r *Room) broadcast(msg protocol.ServerMessage) {
	raw := r.encode(msg)
	for _, c := range r.clients {
		c.send(raw)
	}
}

func (r *Room) broadcastState() {
	r.broadcast(protocol.ServerMessage{Type: protocol.TypeState, State: r.state})
}

func (r *Room) encode(msg protocol.ServerMessage) []byte {
	raw, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{"type":"error","message":"encode failure"}`)
	}
	return raw
}
