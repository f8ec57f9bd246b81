package ui

import (
	"ikasama/internal/input"
)

// Fixed logical resolution; ebiten scales it to the window.
const (
	ViewW = 960
	ViewH = 540

	cardW   = 72.0
	cardH   = 104.0
	cardGap = 12.0

	oppHandY  = 16.0
	oppFieldY = ViewH/2 - 20 - cardH
	myFieldY  = ViewH/2 + 20
	myHandY   = ViewH - cardH - 16
)

type box struct {
	x, y, w, h float64
}

func (b box) contains(x, y float64) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// rowBoxes lays n card slots out centered on the given row.
func rowBoxes(n int, y float64) []box {
	if n <= 0 {
		return nil
	}
	total := float64(n)*cardW + float64(n-1)*cardGap
	x := (ViewW - total) / 2
	out := make([]box, n)
	for i := range out {
		out[i] = box{x: x + float64(i)*(cardW+cardGap), y: y, w: cardW, h: cardH}
	}
	return out
}

// hitAt resolves a cursor position against the four card rows. Rows closer
// to the local player win ties, though the rows never actually overlap.
func hitAt(x, y float64, myHand, oppField, myField, oppHand int) (input.Hit, bool) {
	rows := []struct {
		kind  input.HitKind
		boxes []box
	}{
		{input.HitHand, rowBoxes(myHand, myHandY)},
		{input.HitMyField, rowBoxes(myField, myFieldY)},
		{input.HitOppField, rowBoxes(oppField, oppFieldY)},
		{input.HitOppHand, rowBoxes(oppHand, oppHandY)},
	}
	for _, row := range rows {
		for i, b := range row.boxes {
			if b.contains(x, y) {
				return input.Hit{Kind: row.kind, Index: i}, true
			}
		}
	}
	return input.Hit{}, false
}
