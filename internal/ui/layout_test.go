package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ikasama/internal/input"
)

func TestRowBoxesCentered(t *testing.T) {
	boxes := rowBoxes(3, myHandY)
	require.Len(t, boxes, 3)

	left := boxes[0].x
	right := ViewW - (boxes[2].x + boxes[2].w)
	require.InDelta(t, left, right, 0.001)

	require.Equal(t, boxes[0].x+cardW+cardGap, boxes[1].x)
	require.Nil(t, rowBoxes(0, myHandY))
}

func TestHitAtResolvesRows(t *testing.T) {
	boxes := rowBoxes(3, myHandY)
	hit, ok := hitAt(boxes[1].x+1, myHandY+1, 3, 2, 1, 3)
	require.True(t, ok)
	require.Equal(t, input.Hit{Kind: input.HitHand, Index: 1}, hit)

	opp := rowBoxes(2, oppFieldY)
	hit, ok = hitAt(opp[0].x+cardW/2, oppFieldY+cardH/2, 3, 2, 1, 3)
	require.True(t, ok)
	require.Equal(t, input.Hit{Kind: input.HitOppField, Index: 0}, hit)
}

func TestHitAtMissesGaps(t *testing.T) {
	// dead center of the table, between the two field rows
	_, ok := hitAt(ViewW/2, ViewH/2, 3, 3, 3, 3)
	require.False(t, ok)

	// inside a row's band but past the last card
	_, ok = hitAt(ViewW-1, myHandY+1, 3, 0, 0, 0)
	require.False(t, ok)
}

func TestHitAtEmptyTable(t *testing.T) {
	_, ok := hitAt(ViewW/2, myHandY+1, 0, 0, 0, 0)
	require.False(t, ok)
}
