package game

import (
	"fmt"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/supply"
	"github.com/plus3/blockfall/tetromino"
)

// State is the phase of the active piece's lifecycle.
type State uint8

const (
	StateSpawning State = iota
	StateFalling
	StateLocking
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateLocking:
		return "locking"
	case StateGameOver:
		return "game-over"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Controller drives one piece at a time across the board: spawning it from
// the lookahead, moving, rotating, holding and locking it. Every operation
// builds a complete candidate piece first and commits only if the board
// accepts it. Operations outside StateFalling do nothing.
type Controller struct {
	board *board.Board
	queue *supply.Queue

	state  State
	active tetromino.Piece

	held    tetromino.Shape
	hasHeld bool
	canHold bool

	history    []int
	historyCap int
	locks      int
}

// NewController prepares a controller in StateSpawning. Call Spawn to bring
// in the first piece.
func NewController(b *board.Board, q *supply.Queue, historyLength int) *Controller {
	return &Controller{
		board:      b,
		queue:      q,
		state:      StateSpawning,
		canHold:    true,
		historyCap: max(historyLength, 1),
	}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Board exposes the board for rendering. Callers must not mutate it.
func (c *Controller) Board() *board.Board { return c.board }

// Active returns the falling piece.
func (c *Controller) Active() (tetromino.Piece, bool) {
	return c.active, c.state == StateFalling
}

// Ghost returns where the active piece would land on a hard drop.
func (c *Controller) Ghost() (tetromino.Piece, bool) {
	if c.state != StateFalling {
		return tetromino.Piece{}, false
	}
	return c.board.DropPosition(c.active), true
}

// Held returns the shape in the hold slot.
func (c *Controller) Held() (tetromino.Shape, bool) { return c.held, c.hasHeld }

// CanHold reports whether a hold is still allowed before the next lock.
func (c *Controller) CanHold() bool { return c.canHold }

// Next returns the lookahead, next shape first.
func (c *Controller) Next() []tetromino.Shape { return c.queue.Items() }

// Locks counts every lock since the controller was created.
func (c *Controller) Locks() int { return c.locks }

// History returns lines removed per lock, most recent first.
func (c *Controller) History() []int {
	out := make([]int, len(c.history))
	copy(out, c.history)
	return out
}

// Spawn brings the next lookahead shape onto the board. When it does not fit
// the controller enters StateGameOver and Spawn returns false.
func (c *Controller) Spawn() bool {
	if c.state != StateSpawning {
		return false
	}

	anchor, ok := c.board.SpawnPosition(c.queue.Peek())
	if !ok {
		c.state = StateGameOver
		c.board.ClearActive()
		return false
	}

	c.place(tetromino.Piece{Shape: c.queue.Advance(), Anchor: anchor})
	return true
}

func (c *Controller) place(p tetromino.Piece) {
	c.active = p
	c.board.SetActive(p)
	c.state = StateFalling
}

func (c *Controller) shift(dRow, dCol int) bool {
	if c.state != StateFalling {
		return false
	}
	candidate := c.active.Shifted(dRow, dCol)
	if !c.board.Fits(candidate) {
		return false
	}
	c.place(candidate)
	return true
}

// MoveLeft shifts the piece one column left if it fits.
func (c *Controller) MoveLeft() bool { return c.shift(0, -1) }

// MoveRight shifts the piece one column right if it fits.
func (c *Controller) MoveRight() bool { return c.shift(0, 1) }

// MoveDown shifts the piece one row down. A piece that cannot move down is
// locked instead. The result reports whether anything changed.
func (c *Controller) MoveDown() bool {
	if c.state != StateFalling {
		return false
	}
	if !c.shift(1, 0) {
		c.lock()
	}
	return true
}

// Rotate turns the piece a quarter. The anchor row is kept; the column is
// kept while the piece sits in the left part of the board and otherwise
// moves by the difference of the old extent, so pieces near the right wall
// pivot around their right edge. There is exactly one candidate position.
func (c *Controller) Rotate(d tetromino.Direction) bool {
	if c.state != StateFalling {
		return false
	}

	old := c.active.Shape
	anchor := c.active.Anchor
	if anchor.Col*2 >= c.board.Cols()-old.Cols() {
		anchor.Col += old.Cols() - old.Rows()
	}

	candidate := tetromino.Piece{Shape: old.Rotate(d), Anchor: anchor}
	if !c.board.Fits(candidate) {
		return false
	}
	c.place(candidate)
	return true
}

// Hold sets the active shape aside. With an empty slot the next lookahead
// shape spawns; otherwise the held shape swaps in at its spawn position, and
// the hold is refused if it does not fit there. At most one hold succeeds
// between two locks.
func (c *Controller) Hold() bool {
	if c.state != StateFalling || !c.canHold {
		return false
	}

	if !c.hasHeld {
		c.held, c.hasHeld = c.active.Shape, true
		c.canHold = false
		c.board.ClearActive()
		c.state = StateSpawning
		c.Spawn()
		return true
	}

	anchor, ok := c.board.SpawnPosition(c.held)
	if !ok {
		return false
	}
	swapped := tetromino.Piece{Shape: c.held, Anchor: anchor}
	c.held = c.active.Shape
	c.canHold = false
	c.place(swapped)
	return true
}

// Drop moves the piece straight to its landing row and locks it.
func (c *Controller) Drop() bool {
	if c.state != StateFalling {
		return false
	}
	c.active = c.board.DropPosition(c.active)
	c.lock()
	return true
}

func (c *Controller) lock() {
	c.state = StateLocking
	removed := c.board.Lock(c.active)

	if len(c.history) < c.historyCap {
		c.history = append(c.history, 0)
	}
	copy(c.history[1:], c.history)
	c.history[0] = removed
	c.locks++

	c.canHold = true
	c.state = StateSpawning
	c.Spawn()
}
