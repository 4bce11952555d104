package tetromino

// CellCount is the number of occupied cells in every shape.
const CellCount = 4

// Shape is an immutable block pattern: a bounding box extent and the local
// offsets it occupies inside that box.
type Shape struct {
	rows, cols int
	cells      [CellCount]Coord
	kind       Kind
}

var catalog = [KindCount]Shape{
	KindI: {rows: 4, cols: 1, kind: KindI, cells: [CellCount]Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
	KindO: {rows: 2, cols: 2, kind: KindO, cells: [CellCount]Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	KindL: {rows: 3, cols: 2, kind: KindL, cells: [CellCount]Coord{{0, 0}, {1, 0}, {2, 0}, {2, 1}}},
	KindJ: {rows: 3, cols: 2, kind: KindJ, cells: [CellCount]Coord{{0, 1}, {1, 1}, {2, 1}, {2, 0}}},
	KindZ: {rows: 2, cols: 3, kind: KindZ, cells: [CellCount]Coord{{0, 0}, {0, 1}, {1, 1}, {1, 2}}},
	KindS: {rows: 2, cols: 3, kind: KindS, cells: [CellCount]Coord{{0, 1}, {0, 2}, {1, 1}, {1, 0}}},
	KindT: {rows: 2, cols: 3, kind: KindT, cells: [CellCount]Coord{{0, 1}, {1, 0}, {1, 1}, {1, 2}}},
}

// Of returns the catalog shape for a kind in its spawn orientation.
func Of(k Kind) Shape {
	if k >= KindCount {
		panic("tetromino: unknown kind " + k.String())
	}
	return catalog[k]
}

// Catalog returns all seven shapes in kind order.
func Catalog() []Shape {
	shapes := make([]Shape, KindCount)
	copy(shapes, catalog[:])
	return shapes
}

// Rows is the height of the bounding box.
func (s Shape) Rows() int { return s.rows }

// Cols is the width of the bounding box.
func (s Shape) Cols() int { return s.cols }

// Kind returns the catalog identity of the shape.
func (s Shape) Kind() Kind { return s.kind }

// Color returns the paint of the shape.
func (s Shape) Color() Color { return s.kind.Color() }

// Cells returns a copy of the occupied local offsets.
func (s Shape) Cells() [CellCount]Coord { return s.cells }

// Occupies reports whether the local offset is part of the shape.
func (s Shape) Occupies(c Coord) bool {
	for _, cell := range s.cells {
		if cell == c {
			return true
		}
	}
	return false
}

// Rotate returns the shape turned a quarter in the given direction.
// Turning left maps (r, c) to (C-c-1, r); turning right maps (r, c) to
// (c, R-r-1). The extent swaps in both cases.
func (s Shape) Rotate(d Direction) Shape {
	rotated := Shape{rows: s.cols, cols: s.rows, kind: s.kind}
	for i, cell := range s.cells {
		if d == Left {
			rotated.cells[i] = Coord{Row: s.cols - cell.Col - 1, Col: cell.Row}
		} else {
			rotated.cells[i] = Coord{Row: cell.Col, Col: s.rows - cell.Row - 1}
		}
	}
	return rotated
}

// String draws the shape as rows of '#' and '.'.
func (s Shape) String() string {
	buf := make([]byte, 0, s.rows*(s.cols+1))
	for r := 0; r < s.rows; r++ {
		if r > 0 {
			buf = append(buf, '/')
		}
		for c := 0; c < s.cols; c++ {
			if s.Occupies(Coord{Row: r, Col: c}) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return s.kind.String() + "[" + string(buf) + "]"
}

// Piece is a shape anchored at a board coordinate. Pieces are values: every
// move or rotation yields a new Piece and leaves the old one untouched.
type Piece struct {
	Shape  Shape
	Anchor Coord
}

// Cells returns the absolute coordinates covered by the piece.
func (p Piece) Cells() [CellCount]Coord {
	var out [CellCount]Coord
	for i, cell := range p.Shape.cells {
		out[i] = p.Anchor.Add(cell)
	}
	return out
}

// Shifted returns the piece moved by the given row and column deltas.
func (p Piece) Shifted(dRow, dCol int) Piece {
	return Piece{Shape: p.Shape, Anchor: Coord{Row: p.Anchor.Row + dRow, Col: p.Anchor.Col + dCol}}
}

// Covers reports whether the absolute coordinate belongs to the piece.
func (p Piece) Covers(c Coord) bool {
	return p.Shape.Occupies(Coord{Row: c.Row - p.Anchor.Row, Col: c.Col - p.Anchor.Col})
}
