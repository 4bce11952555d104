package game_test

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/supply"
	"github.com/plus3/blockfall/tetromino"
)

// cycle hands out kinds in order, forever.
type cycle struct {
	kinds []tetromino.Kind
	next  int
}

func (c *cycle) Draw() tetromino.Shape {
	k := c.kinds[c.next%len(c.kinds)]
	c.next++
	return tetromino.Of(k)
}

func at(row, col int) tetromino.Coord {
	return tetromino.Coord{Row: row, Col: col}
}

// newController spawns the first piece of kinds onto b with a lookahead of 3.
func newController(b *board.Board, kinds ...tetromino.Kind) *game.Controller {
	ctrl := game.NewController(b, supply.NewQueue(&cycle{kinds: kinds}, 3), 16)
	ctrl.Spawn()
	return ctrl
}

func kindsOf(shapes []tetromino.Shape) []tetromino.Kind {
	out := make([]tetromino.Kind, len(shapes))
	for i, s := range shapes {
		out[i] = s.Kind()
	}
	return out
}

func testRules() game.Rules {
	rules := game.DefaultRules()
	rules.StartPaused = false
	rules.Seed = 1
	return rules
}
