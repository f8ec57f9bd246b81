package transport

import (
	"math/rand"
	"sync"
	"time"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// OfflineHost is what the simulator needs from the session beyond the plain
// message handlers: the match state slot it writes through, and a nudge to
// re-derive the screen phase after a local mutation.
type OfflineHost interface {
	Handler
	Store() *match.Store
	RederivePhase()
}

// Offline fabricates the server locally: it translates outbound client
// messages into match mutations on the host's store and never touches the
// network. Messages are applied one at a time from a single goroutine, so
// the session's send path never re-enters its own lock.
type Offline struct {
	host  OfflineHost
	rules config.Rules
	cat   *catalog.Catalog
	rng   *rand.Rand
	now   func() time.Time
	opp   *match.Opponent

	inbox     chan envelope
	closeOnce sync.Once
	done      chan struct{}
}

// envelope is one queued frame, or a drain marker when done is set.
type envelope struct {
	msg  protocol.ClientMessage
	done chan struct{}
}

// OfflineOptions carries the injectable clock and randomness.
type OfflineOptions struct {
	Rand *rand.Rand
	Now  func() time.Time
}

func NewOffline(host OfflineHost, rules config.Rules, cat *catalog.Catalog, opts OfflineOptions) *Offline {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Offline{
		host:  host,
		rules: rules,
		cat:   cat,
		rng:   opts.Rand,
		now:   opts.Now,
		opp:   match.NewOpponent(opts.Rand, opts.Now),
		inbox: make(chan envelope, 64),
		done:  make(chan struct{}),
	}
}

// Open seats the local player, announces the fabricated opponent, and
// starts the apply loop. Call it before sending anything.
func (o *Offline) Open() {
	o.host.Store().Replace(match.New("offline", o.rules, o.cat))
	o.host.HandleHello(match.RolePlayer, "offline")
	o.host.HandleSystem(protocol.SystemOpponentFound)
	go o.loop()
}

// Send queues one client message for the simulator. A full inbox drops the
// message, mirroring a saturated socket.
func (o *Offline) Send(msg protocol.ClientMessage) error {
	select {
	case o.inbox <- envelope{msg: msg}:
	case <-o.done:
	default:
	}
	return nil
}

// Drain blocks until every message queued before it has been applied, so a
// caller can read the result of its own sends. The inbox is FIFO.
func (o *Offline) Drain() {
	marker := make(chan struct{})
	select {
	case o.inbox <- envelope{done: marker}:
	case <-o.done:
		return
	}
	select {
	case <-marker:
	case <-o.done:
	}
}

// Close stops the apply loop and reports the closure like a socket would.
func (o *Offline) Close() error {
	o.closeOnce.Do(func() {
		close(o.done)
	})
	return nil
}

func (o *Offline) loop() {
	for {
		select {
		case e := <-o.inbox:
			if e.done != nil {
				close(e.done)
				continue
			}
			o.apply(e.msg)
		case <-o.done:
			return
		}
	}
}

func (o *Offline) apply(msg protocol.ClientMessage) {
	if msg.Type != protocol.TypeAction {
		return
	}
	store := o.host.Store()
	now := o.now()

	switch msg.Action {
	case protocol.ActionCursor:
		// No peer to mirror the cursor to.
		return

	case protocol.ActionStart:
		first := match.RolePlayer
		if o.rng.Intn(2) == 1 {
			first = match.RoleOpponent
		}
		store.Update(func(st *match.State) bool {
			st.Start(first, o.rules)
			// The fabricated opponent keeps its dealt hand.
			st.SetMulliganSelection(match.RoleOpponent, nil)
			return true
		})

	case protocol.ActionPlayCard:
		if msg.Play == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			return st.PlayCard(match.RolePlayer, msg.Play.HandIndex, o.rules)
		})

	case protocol.ActionEndTurn:
		store.Update(func(st *match.State) bool {
			if !st.Started || st.IsGameOver || st.IsMulliganPhase || st.CurrentTurn != match.RolePlayer {
				return false
			}
			st.SwitchTurn(o.rules)
			o.opp.Step(st, o.rules)
			st.SwitchTurn(o.rules)
			return true
		})

	case protocol.ActionSneakGrave:
		if msg.Play == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			return st.SneakToGrave(match.RolePlayer, msg.Play.HandIndex, now, o.rules)
		})

	case protocol.ActionSneakDiscard:
		if msg.Play == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			return st.SneakDiscard(match.RolePlayer, msg.Play.HandIndex, now, o.rules)
		})

	case protocol.ActionDestroyDemo:
		if msg.Play == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			return st.DestroyOpponentField(match.RolePlayer, msg.Play.FieldIndex, now, o.rules)
		})

	case protocol.ActionCheat:
		if msg.Cheat == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			return st.ApplyCheat(match.RolePlayer, msg.Cheat.CheatType, msg.Cheat.Data, now, o.rng, o.rules)
		})

	case protocol.ActionAccuse:
		if msg.Accuse == nil {
			return
		}
		var target *match.CheatEntry
		if msg.Accuse.Index >= 0 {
			target = &match.CheatEntry{TS: msg.Accuse.TS, Action: msg.Accuse.Action}
		}
		store.Update(func(st *match.State) bool {
			st.Accuse(match.RolePlayer, target, now, o.rules)
			return true
		})

	case protocol.ActionMulligan:
		if msg.Mulligan == nil {
			return
		}
		store.Update(func(st *match.State) bool {
			st.SetMulliganSelection(match.RolePlayer, msg.Mulligan.CardIndices)
			return true
		})
	}

	o.host.RederivePhase()
}
