package server

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Server is the matchmaking and match-hosting HTTP surface: a websocket
// endpoint per room plus the first-attack coin flip.
type Server struct {
	registry *Registry
	router   chi.Router
	rng      *rand.Rand
}

func New(rules config.Rules, cat *catalog.Catalog) *Server {
	s := &Server{
		registry: NewRegistry(rules, cat),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	r := chi.NewRouter()
	r.Get("/ws/{roomID}", s.handleWebSocket)
	r.Post("/api/first_attack", s.handleFirstAttack)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleFirstAttack(w http.ResponseWriter, r *http.Request) {
	first := match.RolePlayer
	if s.rng.Intn(2) == 1 {
		first = match.RoleOpponent
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.FirstAttackResponse{First: first})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	mode := r.URL.Query().Get("mode")

	var room *Room
	switch mode {
	case "create":
		var created bool
		room, created = s.registry.Create(roomID)
		if created {
			go room.Run()
		}
	default:
		var err error
		room, err = s.registry.Lookup(roomID)
		if err != nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	// Outbound frames go through a buffered channel so a slow reader never
	// blocks a room broadcast; overflow drops the frame.
	out := make(chan []byte, 64)
	send := func(raw []byte) {
		select {
		case out <- raw:
		default:
		}
	}

	c, err := room.Join(send)
	if err != nil {
		raw, _ := json.Marshal(protocol.ServerMessage{Type: protocol.TypeError, Message: err.Error()})
		conn.Write(ctx, websocket.MessageText, raw)
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	// Leave must run before the channel closes: broadcasts only reach this
	// client while it is still registered with the room.
	defer func() {
		room.Leave(c)
		close(out)
	}()

	go func() {
		for raw := range out {
			if err := conn.Write(ctx, websocket.MessageText, raw); err != nil {
				return
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Printf("room %s: %s disconnected: %v", room.ID(), c.role, err)
			return
		}
		room.Handle(c, data)
	}
}
