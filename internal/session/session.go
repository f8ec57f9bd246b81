package session

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"ikasama/internal/config"
	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/present"
	"ikasama/internal/protocol"
)

// Phase is the client screen-level state.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseConnecting
	PhaseMulligan
	PhaseBattle
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhaseConnecting:
		return "connecting"
	case PhaseMulligan:
		return "mulligan"
	case PhaseBattle:
		return "battle"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Sender is the outbound half of a transport. Both the websocket client and
// the offline simulator implement it.
type Sender interface {
	Send(msg protocol.ClientMessage) error
	Close() error
}

// Session owns the match state store and the screen phase, reconciles timer
// ticks with transport messages, and is the single point of serialization:
// every trigger takes the session lock, fully applies its mutation, and only
// then yields.
type Session struct {
	mu     sync.Mutex
	rules  config.Rules
	store  *match.Store
	hooks  present.Hooks
	logger log.EventLogger
	sender Sender
	now    func() time.Time
	rng    *rand.Rand

	phase  Phase
	myRole match.Role
	roomID string

	// viewRole mirrors myRole for the store change hook, which runs under
	// the store lock and so must not take s.mu.
	viewRole atomic.Value

	// Offline mode runs the turn and mulligan clocks locally and steps a
	// scripted opponent; networked mode takes both from realtime frames.
	offline  bool
	opponent *match.Opponent

	accuse      accuseWindow
	battleDelay countdown
}

// Options carries the injectable collaborators. Zero values get defaults.
type Options struct {
	Hooks  present.Hooks
	Logger log.EventLogger
	Now    func() time.Time
	Rand   *rand.Rand
}

func New(rules config.Rules, opts Options) *Session {
	if opts.Hooks == nil {
		opts.Hooks = present.NopHooks{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewMemoryLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		rules:  rules,
		store:  match.NewStore(nil),
		hooks:  opts.Hooks,
		logger: opts.Logger,
		now:    opts.Now,
		rng:    opts.Rand,
		phase:  PhaseTitle,
	}
	s.opponent = match.NewOpponent(s.rng, s.now)
	s.viewRole.Store(match.RoleNone)
	s.store.OnChange(func(st *match.State) {
		s.hooks.StateChanged(st, s.viewRole.Load().(match.Role))
	})
	return s
}

// Attach installs the transport and marks the session connecting. Offline
// reports whether the transport simulates locally, which moves the clocks
// into this session.
func (s *Session) Attach(sender Sender, offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
	s.offline = offline
	s.setPhase(PhaseConnecting)
}

// Store exposes the match state slot. Transports write through it; the
// presentation layer reads snapshots from it.
func (s *Session) Store() *match.Store { return s.store }

// Phase returns the current screen phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Role returns the local seat, RoleNone before the hello arrives.
func (s *Session) Role() match.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myRole
}

// Events exposes the session event log.
func (s *Session) Events() []log.GameEvent { return s.logger.Events() }

// RederivePhase aligns the screen phase with the store contents. The
// offline transport calls this after applying an action, since no
// authoritative snapshot message follows a local mutation.
func (s *Session) RederivePhase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Read(func(st *match.State) {
		switch {
		case st.IsGameOver:
			s.accuse.close()
			s.hooks.AccuseClosed()
			s.setPhase(PhaseGameOver)
		case st.IsMulliganPhase:
			s.setPhase(PhaseMulligan)
		case st.Started:
			s.setPhase(PhaseBattle)
		}
	})
}

// setPhase transitions the screen phase. Callers hold the lock.
func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.logger.Log(log.NewPhaseChangeEvent(p.String()))
	s.hooks.PhaseChanged(p.String())
}

// send pushes a client message out, dropping it when no transport is
// attached. Send failures surface through HandleClosed, not here.
func (s *Session) send(msg protocol.ClientMessage) {
	if s.sender == nil {
		return
	}
	_ = s.sender.Send(msg)
}

// reset returns to the title screen, clearing transport-owned identity but
// leaving any resolved match outcome readable in the store.
func (s *Session) reset() {
	s.myRole = match.RoleNone
	s.viewRole.Store(match.RoleNone)
	s.roomID = ""
	if s.sender != nil {
		_ = s.sender.Close()
		s.sender = nil
	}
	s.accuse.close()
	s.battleDelay.stop()
	s.setPhase(PhaseTitle)
}
