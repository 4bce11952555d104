package main

import (
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	l := layout{rows: 20, cols: 10}
	assert.Equal(t, 3*margin+16*cellSize, l.width())
	assert.Equal(t, 2*margin+20*cellSize, l.height())

	x, y := l.cellOrigin(2, 3)
	assert.Equal(t, float32(margin+3*cellSize), x)
	assert.Equal(t, float32(margin+2*cellSize), y)
	assert.Equal(t, margin*2+10*cellSize, l.sidebarX())
}

func TestPaletteCoversEveryKind(t *testing.T) {
	seen := map[[4]uint8]bool{}
	for _, shape := range tetromino.Catalog() {
		c := paint(shape.Color())
		seen[[4]uint8{c.R, c.G, c.B, c.A}] = true
		assert.NotEqual(t, paint(tetromino.ColorNone), c)
	}
	assert.Len(t, seen, tetromino.KindCount)
	assert.Equal(t, paint(tetromino.ColorNone), paint(tetromino.Color(99)))
}

func TestQueueString(t *testing.T) {
	snap := game.Snapshot{Next: []tetromino.Shape{
		tetromino.Of(tetromino.KindT),
		tetromino.Of(tetromino.KindI),
	}}
	assert.Equal(t, "T I", queueString(&snap))
}
