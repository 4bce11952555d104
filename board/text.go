package board

import (
	"fmt"
	"strings"

	"github.com/plus3/blockfall/tetromino"
)

const emptyGlyph = '.'

// Parse builds a board from text rows, top row first. '.' is an empty cell
// and a shape letter (I, O, L, J, Z, S, T) is a cell locked in that shape's
// color. Every row must have the same width.
func Parse(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("board: parse: empty grid")
	}

	b := New(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != b.cols {
			return nil, fmt.Errorf("board: parse: row %d has width %d, want %d", r, len(line), b.cols)
		}
		for c := 0; c < len(line); c++ {
			if line[c] == emptyGlyph {
				continue
			}
			kind, ok := tetromino.ParseKind(line[c])
			if !ok {
				return nil, fmt.Errorf("board: parse: row %d col %d: unknown glyph %q", r, c, line[c])
			}
			b.cells[r*b.cols+c] = kind.Color()
		}
	}
	return b, nil
}

// MustParse is Parse for fixtures that are known to be valid.
func MustParse(rows ...string) *Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// Lines renders the locked cells in the format accepted by Parse.
func (b *Board) Lines() []string {
	lines := make([]string, b.rows)
	buf := make([]byte, b.cols)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			buf[c] = glyph(b.cells[r*b.cols+c])
		}
		lines[r] = string(buf)
	}
	return lines
}

func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}

func glyph(color tetromino.Color) byte {
	kind, ok := tetromino.KindOfColor(color)
	if !ok {
		return emptyGlyph
	}
	return kind.String()[0]
}
