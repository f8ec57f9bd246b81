package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"ikasama/internal/input"
	"ikasama/internal/match"
	"ikasama/internal/present"
)

var (
	colBackground = color.NRGBA{24, 26, 34, 255}
	colCard       = color.NRGBA{52, 58, 84, 255}
	colCardBack   = color.NRGBA{40, 42, 54, 255}
	colHighlight  = color.NRGBA{240, 196, 25, 255}
	colPanel      = color.NRGBA{30, 30, 45, 240}
	colCursor     = color.NRGBA{255, 255, 255, 220}
	colOppCursor  = color.NRGBA{255, 120, 120, 180}
	colDim        = color.NRGBA{170, 174, 190, 255}
	colWarn       = color.NRGBA{255, 120, 120, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	view := g.view
	haveState := g.haveState
	phase := g.phase
	turnClock, mullClock, accuseClock := g.turnClock, g.mullClock, g.accuseClock
	accusals := g.accusals
	accuseUp := g.accuseUp
	sysMsg, sysTTL := g.sysMsg, g.sysTTL
	oppX, oppY, oppTTL := g.oppX, g.oppY, g.oppTTL
	dropReason := g.dropReason
	mullCursor, mullSent := g.mullCursor, g.mullSent
	mullSel := make(map[int]bool, len(g.mullSel))
	for k, v := range g.mullSel {
		mullSel[k] = v
	}
	g.mu.Unlock()

	ebitenutil.DrawRect(screen, 0, 0, ViewW, ViewH, colBackground)

	switch phase {
	case "title":
		drawTitle(screen)
		return
	case "connecting":
		drawConnecting(screen, sysMsg)
		return
	}

	if !haveState {
		return
	}

	drawTable(screen, view)
	drawHUD(screen, view, phase, turnClock, mullClock)

	if phase == "mulligan" {
		drawMulliganOverlay(screen, view, mullCursor, mullSel, mullSent, mullClock)
	}

	if phase == "battle" {
		if oppTTL > 0 {
			drawCursor(screen, oppX, oppY, colOppCursor)
		}
		cx, cy := g.ctrl.Cursor()
		drawCursor(screen, cx, cy, colCursor)
		if g.ctrl.Mode() == input.ModeMenu {
			drawMenu(screen, g.ctrl.Menu(), cx, cy)
		}
		if accuseUp {
			drawAccuseOverlay(screen, accusals, g.ctrl.AccuseSelected(), accuseClock)
		}
	}

	if sysTTL > 0 && sysMsg != "" {
		text.Draw(screen, sysMsg, basicfont.Face7x13, 16, ViewH-8, color.White)
	}

	if phase == "game-over" {
		drawGameOver(screen, view, dropReason)
	}
}

func drawTitle(screen *ebiten.Image) {
	text.Draw(screen, "I K A S A M A", basicfont.Face7x13, ViewW/2-52, ViewH/2-30, color.White)
	text.Draw(screen, "a card game for cheaters", basicfont.Face7x13, ViewW/2-84, ViewH/2-10, colDim)
	text.Draw(screen, "Press Enter to play", basicfont.Face7x13, ViewW/2-62, ViewH/2+30, color.White)
	text.Draw(screen, "Esc quits", basicfont.Face7x13, ViewW/2-30, ViewH/2+50, colDim)
}

func drawConnecting(screen *ebiten.Image, sysMsg string) {
	msg := "Looking for an opponent..."
	if sysMsg != "" {
		msg = sysMsg
	}
	text.Draw(screen, msg, basicfont.Face7x13, ViewW/2-len(msg)*7/2, ViewH/2, color.White)
}

func drawTable(screen *ebiten.Image, v present.View) {
	drawRow(screen, v.Theirs.Hand, oppHandY, true, -1, nil)
	drawRow(screen, v.Theirs.Field, oppFieldY, false, -1, nil)
	drawRow(screen, v.Mine.Field, myFieldY, false, -1, nil)
	drawRow(screen, v.Mine.Hand, myHandY, false, -1, nil)
}

// drawRow renders one card row. faceDown hides identities; cursor and sel
// mark mulligan highlights and are ignored when cursor is -1.
func drawRow(screen *ebiten.Image, cards []present.CardView, y float64, faceDown bool, cursor int, sel map[int]bool) {
	boxes := rowBoxes(len(cards), y)
	for i, b := range boxes {
		fill := colCard
		if faceDown {
			fill = colCardBack
		}
		if sel[i] {
			fill = color.NRGBA{84, 58, 52, 255}
		}
		ebitenutil.DrawRect(screen, b.x, b.y, b.w, b.h, fill)
		if i == cursor {
			ebitenutil.DrawRect(screen, b.x, b.y+b.h+2, b.w, 3, colHighlight)
		}
		if faceDown {
			continue
		}
		c := cards[i]
		text.Draw(screen, trim(c.Name, 9), basicfont.Face7x13, int(b.x)+4, int(b.y)+16, color.White)
		text.Draw(screen, fmt.Sprintf("%d", c.Cost), basicfont.Face7x13, int(b.x)+4, int(b.y)+32, colHighlight)
		text.Draw(screen, fmt.Sprintf("%d/%d", c.Power, c.Tough), basicfont.Face7x13, int(b.x)+4, int(b.y+b.h)-6, colDim)
	}
}

func drawHUD(screen *ebiten.Image, v present.View, phase string, turnClock, mullClock int) {
	mine := fmt.Sprintf("HP %d  Mana %d/%d  Deck %d  Penalty %d", v.Mine.HP, v.Mine.Mana, v.Mine.MaxMana, v.Mine.Deck, v.Mine.Penalty)
	theirs := fmt.Sprintf("HP %d  Mana %d/%d  Deck %d  Penalty %d", v.Theirs.HP, v.Theirs.Mana, v.Theirs.MaxMana, v.Theirs.Deck, v.Theirs.Penalty)
	text.Draw(screen, theirs, basicfont.Face7x13, 16, int(oppHandY)+int(cardH)+26, colDim)
	text.Draw(screen, mine, basicfont.Face7x13, 16, int(myHandY)-12, colDim)

	clock := turnClock
	if phase == "mulligan" {
		clock = mullClock
	}
	label := v.TurnLabel
	if clock >= 0 {
		label = fmt.Sprintf("%s  %ds", label, clock)
	}
	col := color.Color(color.White)
	if clock >= 0 && clock <= 5 {
		col = colWarn
	}
	text.Draw(screen, label, basicfont.Face7x13, ViewW-16-len(label)*7, 24, col)

	if phase == "battle" {
		text.Draw(screen, "Z confirm  X cancel  C accuse  E end turn", basicfont.Face7x13, 16, 24, colDim)
	}
}

func drawMulliganOverlay(screen *ebiten.Image, v present.View, cursor int, sel map[int]bool, sent bool, clock int) {
	drawRow(screen, v.Mine.Hand, myHandY, false, cursor, sel)
	msg := "Mulligan: arrows move, Z marks a card to swap, Enter confirms"
	if sent {
		msg = "Waiting for the opponent..."
	}
	text.Draw(screen, msg, basicfont.Face7x13, ViewW/2-len(msg)*7/2, ViewH/2, color.White)
	if clock >= 0 {
		t := fmt.Sprintf("%ds", clock)
		text.Draw(screen, t, basicfont.Face7x13, ViewW/2-len(t)*7/2, ViewH/2+20, colHighlight)
	}
}

func drawCursor(screen *ebiten.Image, x, y float64, col color.Color) {
	ebitenutil.DrawRect(screen, x-7, y-1, 14, 2, col)
	ebitenutil.DrawRect(screen, x-1, y-7, 2, 14, col)
}

// drawMenu renders the four-way action menu around the cursor.
func drawMenu(screen *ebiten.Image, m input.Menu, cx, cy float64) {
	offsets := map[input.Direction][2]float64{
		input.Up:    {0, -46},
		input.Left:  {-120, 0},
		input.Down:  {0, 46},
		input.Right: {120, 0},
	}
	for dir, off := range offsets {
		slot, ok := m.Slots[dir]
		if !ok {
			continue
		}
		w := float64(len(slot.Label)*7 + 16)
		x := cx + off[0] - w/2
		y := cy + off[1] - 12
		fill := colPanel
		if dir == m.Selected {
			fill = color.NRGBA{70, 70, 110, 255}
		}
		ebitenutil.DrawRect(screen, x, y, w, 24, fill)
		col := color.Color(color.White)
		if slot.Category == input.CategoryCheat {
			col = colWarn
		}
		text.Draw(screen, slot.Label, basicfont.Face7x13, int(x)+8, int(y)+16, col)
	}
}

func drawAccuseOverlay(screen *ebiten.Image, entries []match.CheatEntry, selected, clock int) {
	w, rowH := 420.0, 20.0
	h := rowH*float64(len(entries)+2) + 16
	x := (ViewW - w) / 2
	y := (ViewH - h) / 2
	ebitenutil.DrawRect(screen, x, y, w, h, colPanel)

	header := "Call out a cheat  (Z accuse, X back)"
	if clock >= 0 {
		header = fmt.Sprintf("%s  %ds", header, clock)
	}
	text.Draw(screen, header, basicfont.Face7x13, int(x)+10, int(y)+16, color.White)

	if len(entries) == 0 {
		text.Draw(screen, "Nothing to call out. Z withdraws with a penalty.", basicfont.Face7x13, int(x)+10, int(y)+40, colDim)
		return
	}
	for i, e := range entries {
		line := fmt.Sprintf("%s  %s", time.Unix(int64(e.TS), 0).Format("15:04:05"), e.Action)
		col := color.Color(colDim)
		if i == selected {
			col = colHighlight
		}
		text.Draw(screen, line, basicfont.Face7x13, int(x)+10, int(y)+40+i*int(rowH), col)
	}
}

func drawGameOver(screen *ebiten.Image, v present.View, dropReason string) {
	ebitenutil.DrawRect(screen, 0, ViewH/2-50, ViewW, 100, colPanel)
	result := v.Result
	if result == "" {
		result = "Match over"
	}
	text.Draw(screen, result, basicfont.Face7x13, ViewW/2-len(result)*7/2, ViewH/2-8, color.White)
	if dropReason != "" {
		text.Draw(screen, dropReason, basicfont.Face7x13, ViewW/2-len(dropReason)*7/2, ViewH/2+12, colDim)
	}
	text.Draw(screen, "Esc quits", basicfont.Face7x13, ViewW/2-30, ViewH/2+32, colDim)
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
