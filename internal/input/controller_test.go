package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeActions records every mutation call.
type fakeActions struct {
	played    []int
	sneaked   []int
	discarded []int
	destroyed []int
	accused   []int
	cancels   int
}

func (f *fakeActions) PlayCard(i int) { f.played = append(f.played, i) }
func (f *fakeActions) SneakToGrave(i int) { f.sneaked = append(f.sneaked, i) }
func (f *fakeActions) SneakDiscard(i int) { f.discarded = append(f.discarded, i) }
func (f *fakeActions) DestroyOpponentField(i int) { f.destroyed = append(f.destroyed, i) }

func (f *fakeActions) Accuse(i int) { f.accused = append(f.accused, i) }
func (f *fakeActions) CancelAccuse() { f.cancels++ }

// fixedTester returns a fixed hit regardless of coordinates.
type fixedTester struct {
	hit Hit
	ok  bool
}

func (t fixedTester) HitAt(x, y float64) (Hit, bool) { return t.hit, t.ok }

type fixedOpener int

func (o fixedOpener) OpenAccuseCount() int { return int(o) }

func newController(tester Tester) (*Controller, *fakeActions) {
	a := &fakeActions{}
	return NewController(a, tester, 420, 800, 600), a
}

func TestCursorIntegration(t *testing.T) {
	c, _ := newController(fixedTester{})
	x0, y0 := c.Cursor()

	c.DirectionDown(Right)
	c.Advance(0.5)
	x, y := c.Cursor()
	require.InDelta(t, x0+210, x, 1e-9)
	require.Equal(t, y0, y)

	// Released key stops motion.
	c.DirectionUp(Right)
	c.Advance(0.5)
	x2, _ := c.Cursor()
	require.Equal(t, x, x2)
}

func TestCursorDiagonalNormalized(t *testing.T) {
	c, _ := newController(fixedTester{})
	x0, y0 := c.Cursor()

	c.DirectionDown(Right)
	c.DirectionDown(Down)
	c.Advance(0.1)

	x, y := c.Cursor()
	dist := math.Hypot(x-x0, y-y0)
	require.InDelta(t, 42, dist, 1e-9)
}

func TestCursorClampsToViewport(t *testing.T) {
	c, _ := newController(fixedTester{})
	c.DirectionDown(Left)
	c.DirectionDown(Up)
	c.Advance(60)

	x, y := c.Cursor()
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)
}

func TestConfirmOnHandOpensMenu(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 2}, ok: true})

	c.Confirm()
	require.Equal(t, ModeMenu, c.Mode())
	m := c.Menu()
	require.True(t, m.Open)
	require.Equal(t, 2, m.SubjectIndex)
	require.Equal(t, Up, m.Selected)
	require.Empty(t, a.played)

	// Cursor freezes while the menu is up.
	c.DirectionDown(Right)
	c.Advance(1)
	x, _ := c.Cursor()
	require.Equal(t, 400.0, x)
}

func TestMenuCommitPlays(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 1}, ok: true})
	c.Confirm()

	c.Confirm() // default slot is Up: play
	require.Equal(t, []int{1}, a.played)
	require.Equal(t, ModeIdle, c.Mode())
	require.False(t, c.Menu().Open)
}

func TestMenuDirectionalSelection(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 0}, ok: true})
	c.Confirm()

	c.DirectionDown(Left)
	require.Equal(t, Left, c.Menu().Selected)
	c.Confirm()
	require.Equal(t, []int{0}, a.sneaked)
	require.Empty(t, a.played)

	// Right is an empty slot: commit closes with no action.
	c.Confirm()
	c.DirectionDown(Right)
	c.Confirm()
	require.Empty(t, a.played)
	require.Equal(t, ModeIdle, c.Mode())
}

func TestMenuCancel(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 0}, ok: true})
	c.Confirm()
	c.Cancel()
	require.Equal(t, ModeIdle, c.Mode())
	require.Empty(t, a.played)
	require.Empty(t, a.sneaked)
	require.Empty(t, a.discarded)
}

func TestConfirmOnOpponentFieldDestroys(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitOppField, Index: 3}, ok: true})
	c.Confirm()
	require.Equal(t, []int{3}, a.destroyed)
	require.Equal(t, ModeIdle, c.Mode())
}

func TestConfirmOnNothing(t *testing.T) {
	c, a := newController(fixedTester{ok: false})
	c.Confirm()
	require.Equal(t, ModeIdle, c.Mode())
	require.Empty(t, a.played)
	require.Empty(t, a.destroyed)
}

func TestAccuseFlow(t *testing.T) {
	c, a := newController(fixedTester{})

	c.AccuseKey(fixedOpener(3))
	require.Equal(t, ModeAccuse, c.Mode())

	// Directional keys scroll the list, clamped at both ends.
	c.DirectionDown(Down)
	c.DirectionDown(Down)
	c.DirectionDown(Down)
	require.Equal(t, 2, c.AccuseSelected())
	c.DirectionDown(Up)
	require.Equal(t, 1, c.AccuseSelected())

	c.Confirm()
	require.Equal(t, []int{1}, a.accused)
	require.Equal(t, ModeIdle, c.Mode())
}

func TestAccuseEmptyListConfirmIsFalseAccusation(t *testing.T) {
	c, a := newController(fixedTester{})
	c.AccuseKey(fixedOpener(0))
	c.Confirm()
	require.Equal(t, []int{-1}, a.accused)
}

func TestAccuseCancel(t *testing.T) {
	c, a := newController(fixedTester{})
	c.AccuseKey(fixedOpener(2))
	c.Cancel()
	require.Equal(t, 1, a.cancels)
	require.Empty(t, a.accused)
	require.Equal(t, ModeIdle, c.Mode())
}

func TestAccuseKeyIgnoredWhileModal(t *testing.T) {
	c, _ := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 0}, ok: true})
	c.Confirm() // menu open
	c.AccuseKey(fixedOpener(2))
	require.Equal(t, ModeMenu, c.Mode())
}

func TestFocusLostReleasesKeysAndMenu(t *testing.T) {
	c, _ := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 0}, ok: true})
	c.DirectionDown(Right)
	c.Confirm() // menu open

	c.FocusLost()
	require.Equal(t, ModeIdle, c.Mode())
	require.False(t, c.Menu().Open)

	// The released key no longer drives the cursor.
	x0, _ := c.Cursor()
	c.Advance(1)
	x, _ := c.Cursor()
	require.Equal(t, x0, x)
}

func TestModalFreezesEverything(t *testing.T) {
	c, a := newController(fixedTester{hit: Hit{Kind: HitHand, Index: 0}, ok: true})
	c.SetModal(true)

	c.DirectionDown(Right)
	c.Advance(1)
	x, _ := c.Cursor()
	require.Equal(t, 400.0, x)

	c.Confirm()
	require.Empty(t, a.played)

	c.SetModal(false)
	require.Equal(t, ModeIdle, c.Mode())
}
