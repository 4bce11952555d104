// Package tetromino defines the seven block shapes, their rotation transform
// and the Piece value that anchors a shape on a board.
package tetromino

import "fmt"

// Coord is a (row, col) pair. Rows grow downward and columns grow rightward.
// It is used both for absolute board cells and for shape-local offsets.
type Coord struct {
	Row, Col int
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Color is the paint of a board cell. The zero value is an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorSkyBlue
	ColorYellow
	ColorOrange
	ColorBlue
	ColorRed
	ColorGreen
	ColorPurple
)

var colorNames = [...]string{"none", "skyblue", "yellow", "orange", "blue", "red", "green", "purple"}

// Solid reports whether the color marks an occupied cell.
func (c Color) Solid() bool {
	return c != ColorNone
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Kind identifies one of the seven catalog shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindL
	KindJ
	KindZ
	KindS
	KindT

	// KindCount is the number of shapes in the catalog.
	KindCount = 7
)

var kindLetters = [KindCount]byte{'I', 'O', 'L', 'J', 'Z', 'S', 'T'}

func (k Kind) String() string {
	if k < KindCount {
		return string(kindLetters[k])
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Color returns the paint used for cells locked from this kind.
func (k Kind) Color() Color {
	return Color(k) + ColorSkyBlue
}

// KindOfColor maps a cell color back to the kind that paints it.
func KindOfColor(c Color) (Kind, bool) {
	if !c.Solid() || int(c) > KindCount {
		return 0, false
	}
	return Kind(c - ColorSkyBlue), true
}

// ParseKind accepts a shape letter such as 'T'.
func ParseKind(letter byte) (Kind, bool) {
	for k, l := range kindLetters {
		if l == letter {
			return Kind(k), true
		}
	}
	return 0, false
}

// Direction selects a quarter turn.
type Direction uint8

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}
