package input

import (
	"math"
)

// Mode is the interaction sub-state. Any mode other than Idle is modal:
// free cursor movement is suspended and the position freezes.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMenu
	ModeAccuse
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMenu:
		return "menu"
	case ModeAccuse:
		return "accuse"
	case ModeModal:
		return "modal"
	default:
		return "unknown"
	}
}

// Direction is a four-way input used both for cursor movement and for menu
// slot selection.
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Hit is the renderer's answer to a cursor query: what the cursor is over.
type Hit struct {
	Kind  HitKind
	Index int
}

type HitKind string

const (
	HitHand     HitKind = "hand"
	HitOppField HitKind = "oppField"
	HitMyField  HitKind = "myField"
	HitOppHand  HitKind = "oppHand"
)

// Tester resolves cursor coordinates to the topmost intersected object. The
// renderer implements it; the controller holds no scene knowledge.
type Tester interface {
	HitAt(x, y float64) (Hit, bool)
}

// Actions is the mutation surface the controller drives. The session
// implements it; every call may turn out to be a silent no-op downstream.
type Actions interface {
	PlayCard(handIndex int)
	SneakToGrave(handIndex int)
	SneakDiscard(handIndex int)
	DestroyOpponentField(fieldIndex int)
	Accuse(index int)
	CancelAccuse()
}

// Opener opens the accusation window and reports the candidate entries
// shown. Split from Actions so tests can fake just the list length.
type Opener interface {
	OpenAccuseCount() int
}

// Controller owns the cursor and the action-menu and accuse sub-state
// machines. It is not safe for concurrent use; drive it from the frame
// loop only.
type Controller struct {
	mode    Mode
	actions Actions
	tester  Tester

	x, y         float64
	viewW, viewH float64
	speed        float64 // cursor units per second

	held map[Direction]bool

	menu Menu

	accuseCount    int
	accuseSelected int
}

func NewController(actions Actions, tester Tester, speed, viewW, viewH float64) *Controller {
	return &Controller{
		actions: actions,
		tester:  tester,
		speed:   speed,
		viewW:   viewW,
		viewH:   viewH,
		x:       viewW / 2,
		y:       viewH / 2,
		held:    make(map[Direction]bool),
	}
}

func (c *Controller) Mode() Mode             { return c.mode }
func (c *Controller) Cursor() (x, y float64) { return c.x, c.y }
func (c *Controller) Menu() Menu             { return c.menu }
func (c *Controller) AccuseSelected() int    { return c.accuseSelected }

// Advance integrates cursor motion over the elapsed frame time. Diagonal
// movement is normalized so it matches axis speed, and the position clamps
// to the viewport. Modal modes freeze the cursor entirely.
func (c *Controller) Advance(dt float64) {
	if c.mode != ModeIdle || dt <= 0 {
		return
	}
	var dx, dy float64
	if c.held[Left] {
		dx--
	}
	if c.held[Right] {
		dx++
	}
	if c.held[Up] {
		dy--
	}
	if c.held[Down] {
		dy++
	}
	if dx == 0 && dy == 0 {
		return
	}
	if dx != 0 && dy != 0 {
		inv := 1 / math.Sqrt2
		dx *= inv
		dy *= inv
	}
	c.x = clamp(c.x+dx*c.speed*dt, 0, c.viewW)
	c.y = clamp(c.y+dy*c.speed*dt, 0, c.viewH)
}

// DirectionDown registers a held directional key. In the menu it moves the
// slot selection instead of the cursor; the accuse list scrolls its own
// selection.
func (c *Controller) DirectionDown(d Direction) {
	switch c.mode {
	case ModeIdle:
		c.held[d] = true
	case ModeMenu:
		c.menu.Selected = d
	case ModeAccuse:
		switch d {
		case Up:
			if c.accuseSelected > 0 {
				c.accuseSelected--
			}
		case Down:
			if c.accuseSelected < c.accuseCount-1 {
				c.accuseSelected++
			}
		}
	}
}

// DirectionUp releases a held directional key. Tracked in every mode so a
// key released while a modal was up does not stick.
func (c *Controller) DirectionUp(d Direction) {
	delete(c.held, d)
}

// Confirm is the context-sensitive confirm key.
func (c *Controller) Confirm() {
	switch c.mode {
	case ModeIdle:
		c.confirmAtCursor()
	case ModeMenu:
		c.commitMenu()
	case ModeAccuse:
		if c.accuseCount > 0 {
			c.actions.Accuse(c.accuseSelected)
		} else {
			c.actions.Accuse(-1)
		}
		c.leaveAccuse()
	}
}

// Cancel closes the active sub-state without effect.
func (c *Controller) Cancel() {
	switch c.mode {
	case ModeMenu:
		c.closeMenu()
	case ModeAccuse:
		c.actions.CancelAccuse()
		c.leaveAccuse()
	}
}

// AccuseKey opens the accusation window from Idle.
func (c *Controller) AccuseKey(opener Opener) {
	if c.mode != ModeIdle {
		return
	}
	c.accuseCount = opener.OpenAccuseCount()
	c.accuseSelected = 0
	c.mode = ModeAccuse
}

// AccuseClosed is called when the window closes from outside the
// controller, typically its countdown expiring.
func (c *Controller) AccuseClosed() {
	if c.mode == ModeAccuse {
		c.leaveAccuse()
	}
}

// SetModal raises or clears the generic modal state (game over, dialogs).
// Raising it closes the menu and drops held keys.
func (c *Controller) SetModal(on bool) {
	if on {
		c.releaseAll()
		c.menu = Menu{}
		c.mode = ModeModal
		return
	}
	if c.mode == ModeModal {
		c.mode = ModeIdle
	}
}

// FocusLost forcibly releases all held keys and closes the action menu, so
// a key released while the window was unfocused cannot stick.
func (c *Controller) FocusLost() {
	c.releaseAll()
	if c.mode == ModeMenu {
		c.closeMenu()
	}
}

func (c *Controller) confirmAtCursor() {
	hit, ok := c.tester.HitAt(c.x, c.y)
	if !ok {
		return
	}
	switch hit.Kind {
	case HitHand:
		c.openMenu(hit.Index)
	case HitOppField:
		c.actions.DestroyOpponentField(hit.Index)
	}
}

func (c *Controller) leaveAccuse() {
	c.accuseCount = 0
	c.accuseSelected = 0
	c.mode = ModeIdle
}

func (c *Controller) releaseAll() {
	for d := range c.held {
		delete(c.held, d)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
