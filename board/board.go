// Package board implements the playing field: a fixed grid of colored cells,
// placement and collision testing, locking and in-place line compaction.
package board

import (
	"errors"
	"fmt"

	"github.com/plus3/blockfall/tetromino"
)

// ErrOutOfRange is returned when a coordinate lies outside the grid.
var ErrOutOfRange = errors.New("board: coordinate out of range")

// Board is a rows x cols grid of cells. Its size never changes after
// construction. The cells covered by the active (unlocked) piece are tracked
// separately from the locked cells so that a piece never collides with its
// own previous position.
type Board struct {
	rows, cols int
	cells      []tetromino.Color

	active    [tetromino.CellCount]tetromino.Coord
	hasActive bool
}

// New creates an empty board. Non-positive dimensions panic.
func New(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("board: invalid size %dx%d", rows, cols))
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]tetromino.Color, rows*cols),
	}
}

// Rows returns the grid height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the grid width.
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether c lies inside [0,rows) x [0,cols).
func (b *Board) InBounds(c tetromino.Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// CellAt returns the color stored at c.
func (b *Board) CellAt(c tetromino.Coord) (tetromino.Color, error) {
	if !b.InBounds(c) {
		return tetromino.ColorNone, fmt.Errorf("%w: %v on %dx%d", ErrOutOfRange, c, b.rows, b.cols)
	}
	return b.cells[b.index(c)], nil
}

func (b *Board) index(c tetromino.Coord) int {
	return c.Row*b.cols + c.Col
}

func (b *Board) solid(c tetromino.Coord) bool {
	return b.cells[b.index(c)].Solid()
}

func (b *Board) inActive(c tetromino.Coord) bool {
	if !b.hasActive {
		return false
	}
	for _, cell := range b.active {
		if cell == c {
			return true
		}
	}
	return false
}

// occupiedByOther is true for locked debris that is not part of the active
// piece. c must be in bounds.
func (b *Board) occupiedByOther(c tetromino.Coord) bool {
	return b.solid(c) && !b.inActive(c)
}

// CanPlace reports whether shape fits with its origin at anchor: every cell
// must be on the board and free of other debris. It never mutates the board.
func (b *Board) CanPlace(shape tetromino.Shape, anchor tetromino.Coord) bool {
	for _, cell := range shape.Cells() {
		abs := anchor.Add(cell)
		if !b.InBounds(abs) || b.occupiedByOther(abs) {
			return false
		}
	}
	return true
}

// Fits is CanPlace for a piece.
func (b *Board) Fits(p tetromino.Piece) bool {
	return b.CanPlace(p.Shape, p.Anchor)
}

// SetActive records the cells covered by the falling piece.
func (b *Board) SetActive(p tetromino.Piece) {
	b.active = p.Cells()
	b.hasActive = true
}

// ClearActive forgets the falling piece.
func (b *Board) ClearActive() {
	b.hasActive = false
}

// Active returns the cells of the falling piece, if any.
func (b *Board) Active() ([tetromino.CellCount]tetromino.Coord, bool) {
	return b.active, b.hasActive
}

// Lock paints the piece permanently onto the grid, forgets the active set and
// clears completed rows. It returns the number of rows removed. Locking a
// piece that does not lie on the board is a programming error and panics.
func (b *Board) Lock(p tetromino.Piece) int {
	cells := p.Cells()
	for _, c := range cells {
		if !b.InBounds(c) {
			panic(fmt.Sprintf("board: lock of %v outside %dx%d", c, b.rows, b.cols))
		}
	}

	color := p.Shape.Color()
	for _, c := range cells {
		b.cells[b.index(c)] = color
	}
	b.ClearActive()

	return b.ClearFullLines()
}

func (b *Board) rowFull(row int) bool {
	for col := 0; col < b.cols; col++ {
		if !b.cells[row*b.cols+col].Solid() {
			return false
		}
	}
	return true
}

// ClearFullLines removes every completely solid row and shifts the rows above
// down to close the gap, leaving empty rows at the top. The grid is compacted
// in place with a single bottom-up pass: a write cursor starts at the bottom
// row and only advances past rows that survive.
func (b *Board) ClearFullLines() int {
	removed := 0
	write := b.rows - 1

	for read := b.rows - 1; read >= 0; read-- {
		if b.rowFull(read) {
			removed++
			continue
		}
		if removed > 0 {
			copy(b.cells[write*b.cols:(write+1)*b.cols], b.cells[read*b.cols:(read+1)*b.cols])
		}
		write--
	}

	clear(b.cells[:removed*b.cols])
	return removed
}

// SpawnPosition returns the anchor where shape enters the board: the top row,
// horizontally centered (rounding right). ok is false when the shape does not
// fit there, which ends the game.
func (b *Board) SpawnPosition(shape tetromino.Shape) (anchor tetromino.Coord, ok bool) {
	anchor = tetromino.Coord{Row: 0, Col: (b.cols - shape.Cols() + 1) / 2}
	if !b.CanPlace(shape, anchor) {
		return tetromino.Coord{}, false
	}
	return anchor, true
}

// DropPosition returns the piece moved straight down as far as it still fits.
// It is the landing spot for a hard drop and the ghost projection.
func (b *Board) DropPosition(p tetromino.Piece) tetromino.Piece {
	for b.Fits(p.Shifted(1, 0)) {
		p = p.Shifted(1, 0)
	}
	return p
}

// Cells returns a row-major copy of every cell.
func (b *Board) Cells() []tetromino.Color {
	out := make([]tetromino.Color, len(b.cells))
	copy(out, b.cells)
	return out
}

// Row returns a copy of one row.
func (b *Board) Row(row int) []tetromino.Color {
	out := make([]tetromino.Color, b.cols)
	copy(out, b.cells[row*b.cols:(row+1)*b.cols])
	return out
}

// Clone returns an independent copy of the board, including the active set.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = b.Cells()
	return &c
}
