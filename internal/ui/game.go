package ui

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ikasama/internal/config"
	"ikasama/internal/input"
	"ikasama/internal/match"
	"ikasama/internal/present"
	"ikasama/internal/session"
)

// Game is the ebiten front end. It implements ebiten.Game, input.Tester, and
// present.Hooks. Hook callbacks arrive from transport goroutines, so they
// only record under the mutex; the frame loop applies everything.
type Game struct {
	sess  *session.Session
	ctrl  *input.Controller
	rules config.Rules

	// OnConnect is invoked when the title screen confirm key is pressed.
	// main wires it to attach a transport and start the match.
	OnConnect func()

	mu        sync.Mutex
	view      present.View
	haveState bool
	phase     string

	turnClock   int
	mullClock   int
	accuseClock int

	accusals     []match.CheatEntry
	accuseUp     bool
	accuseClosed bool // pending notification for the controller

	sysMsg string
	sysTTL float64

	oppX, oppY float64
	oppTTL     float64

	dropReason string

	secAcc float64

	// mulligan sub-state, local to the front end
	mullCursor int
	mullSel    map[int]bool
	mullSent   bool

	lastSentX, lastSentY float64
}

// New builds the front end. The session is created afterwards with Hooks()
// and wired back in through Bind before ebiten.RunGame.
func New(rules config.Rules) *Game {
	return &Game{
		rules:       rules,
		phase:       "title",
		turnClock:   -1,
		mullClock:   -1,
		accuseClock: -1,
		mullSel:     make(map[int]bool),
	}
}

// Hooks returns the present.Hooks implementation to pass to session.Options.
func (g *Game) Hooks() present.Hooks { return (*gameHooks)(g) }

// Bind attaches the session the front end drives.
func (g *Game) Bind(sess *session.Session) {
	g.sess = sess
	g.ctrl = input.NewController(sess, g, g.rules.CursorSpeed, ViewW, ViewH)
}

// HitAt resolves the cursor against the current card rows.
func (g *Game) HitAt(x, y float64) (input.Hit, bool) {
	g.mu.Lock()
	v := g.view
	g.mu.Unlock()
	return hitAt(x, y, len(v.Mine.Hand), len(v.Theirs.Field), len(v.Mine.Field), len(v.Theirs.Hand))
}

// OpenAccuseCount opens the accusation window and reports how many entries
// it shows. Satisfies input.Opener.
func (g *Game) OpenAccuseCount() int {
	return len(g.sess.OpenAccuse())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ViewW, ViewH
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		g.ctrl.FocusLost()
	}

	// Update runs at a fixed tick rate, so each call advances exactly one
	// tick of wall time.
	dt := 1.0 / float64(ebiten.TPS())
	g.secAcc += dt
	if g.secAcc >= 1 {
		g.secAcc -= 1
		g.sess.TickSecond()
	}

	g.mu.Lock()
	phase := g.phase
	closed := g.accuseClosed
	g.accuseClosed = false
	if g.sysTTL > 0 {
		g.sysTTL -= dt
	}
	if g.oppTTL > 0 {
		g.oppTTL -= dt
	}
	g.mu.Unlock()

	if closed {
		g.ctrl.AccuseClosed()
	}

	switch phase {
	case "title":
		g.ctrl.SetModal(true)
		if confirmPressed() && g.OnConnect != nil {
			g.OnConnect()
		}
	case "connecting":
		g.ctrl.SetModal(true)
	case "mulligan":
		g.ctrl.SetModal(true)
		g.updateMulligan()
	case "battle":
		g.ctrl.SetModal(false)
		g.updateBattle(dt)
	case "game-over":
		g.ctrl.SetModal(true)
	}
	return nil
}

func (g *Game) updateMulligan() {
	g.mu.Lock()
	handLen := len(g.view.Mine.Hand)
	sent := g.mullSent
	g.mu.Unlock()
	if sent || handLen == 0 {
		return
	}

	g.mu.Lock()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && g.mullCursor > 0 {
		g.mullCursor--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && g.mullCursor < handLen-1 {
		g.mullCursor++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.mullSel[g.mullCursor] = !g.mullSel[g.mullCursor]
	}
	confirm := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	var indices []int
	if confirm {
		for i := 0; i < handLen; i++ {
			if g.mullSel[i] {
				indices = append(indices, i)
			}
		}
		g.mullSent = true
	}
	g.mu.Unlock()

	if confirm {
		g.sess.ConfirmMulligan(indices)
	}
}

var directionKeys = map[ebiten.Key]input.Direction{
	ebiten.KeyArrowUp:    input.Up,
	ebiten.KeyArrowLeft:  input.Left,
	ebiten.KeyArrowDown:  input.Down,
	ebiten.KeyArrowRight: input.Right,
}

func (g *Game) updateBattle(dt float64) {
	for key, dir := range directionKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.DirectionDown(dir)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.ctrl.DirectionUp(dir)
		}
	}
	if confirmPressed() {
		g.ctrl.Confirm()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.ctrl.Cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.AccuseKey(g)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.sess.EndTurn()
	}

	g.ctrl.Advance(dt)
	if x, y := g.ctrl.Cursor(); x != g.lastSentX || y != g.lastSentY {
		g.lastSentX, g.lastSentY = x, y
		g.sess.SendCursor(x, y)
	}
}

func confirmPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyZ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// gameHooks is the present.Hooks view of Game: record only, never touch the
// controller or the session from here.
type gameHooks Game

func (h *gameHooks) StateChanged(s *match.State, myRole match.Role) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.view = present.Project(s, myRole)
	h.haveState = true
}

func (h *gameHooks) PhaseChanged(phase string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.phase = phase
	if phase == "mulligan" {
		h.mullCursor = 0
		h.mullSel = make(map[int]bool)
		h.mullSent = false
	}
}

func (h *gameHooks) ClockChanged(turn, mulligan, accuse int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turnClock, h.mullClock, h.accuseClock = turn, mulligan, accuse
}

func (h *gameHooks) SystemMessage(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sysMsg = text
	h.sysTTL = 3
}

func (h *gameHooks) AccuseOpened(entries []match.CheatEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accusals = entries
	h.accuseUp = true
}

func (h *gameHooks) AccuseClosed() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accuseUp = false
	h.accuseClosed = true
}

func (h *gameHooks) OpponentCursor(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.oppX, h.oppY = x, y
	h.oppTTL = 1.5
}

func (h *gameHooks) Disconnected(reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropReason = reason
}
