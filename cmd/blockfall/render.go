package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
)

const (
	cellSize     = 28
	margin       = 20
	sidebarCells = 6
	previewCell  = 16
)

var (
	background = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	gridLine   = color.RGBA{0x31, 0x32, 0x44, 0xff}
	ghostLine  = color.RGBA{0xa6, 0xad, 0xc8, 0xff}
	dimmed     = color.RGBA{0x00, 0x00, 0x00, 0xa0}
)

var palette = [...]color.RGBA{
	tetromino.ColorNone:    {0x18, 0x18, 0x25, 0xff},
	tetromino.ColorSkyBlue: {0x89, 0xdc, 0xeb, 0xff},
	tetromino.ColorYellow:  {0xf9, 0xe2, 0xaf, 0xff},
	tetromino.ColorOrange:  {0xfa, 0xb3, 0x87, 0xff},
	tetromino.ColorBlue:    {0x89, 0xb4, 0xfa, 0xff},
	tetromino.ColorRed:     {0xf3, 0x8b, 0xa8, 0xff},
	tetromino.ColorGreen:   {0xa6, 0xe3, 0xa1, 0xff},
	tetromino.ColorPurple:  {0xcb, 0xa6, 0xf7, 0xff},
}

func paint(c tetromino.Color) color.RGBA {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[tetromino.ColorNone]
}

// layout holds the pixel geometry for a board size.
type layout struct {
	rows, cols int
}

func (l layout) width() int  { return margin*3 + (l.cols+sidebarCells)*cellSize }
func (l layout) height() int { return margin*2 + l.rows*cellSize }

// cellOrigin is the top-left pixel of a board cell.
func (l layout) cellOrigin(row, col int) (float32, float32) {
	return float32(margin + col*cellSize), float32(margin + row*cellSize)
}

func (l layout) sidebarX() int { return margin*2 + l.cols*cellSize }

func drawBoard(screen *ebiten.Image, l layout, snap *game.Snapshot) {
	screen.Fill(background)

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			x, y := l.cellOrigin(row, col)
			vector.DrawFilledRect(screen, x, y, cellSize, cellSize, paint(snap.Cell(row, col)), false)
			vector.StrokeRect(screen, x, y, cellSize, cellSize, 1, gridLine, false)
			if snap.IsGhost(row, col) {
				vector.StrokeRect(screen, x+3, y+3, cellSize-6, cellSize-6, 2, ghostLine, false)
			}
		}
	}
}

func drawPreview(screen *ebiten.Image, shape tetromino.Shape, x, y int, faded bool) {
	fill := paint(shape.Color())
	if faded {
		fill = color.RGBA{fill.R / 3, fill.G / 3, fill.B / 3, 0xff}
	}
	for _, c := range shape.Cells() {
		px := float32(x + c.Col*previewCell)
		py := float32(y + c.Row*previewCell)
		vector.DrawFilledRect(screen, px, py, previewCell-1, previewCell-1, fill, false)
	}
}

func drawSidebar(screen *ebiten.Image, l layout, snap *game.Snapshot) {
	x := l.sidebarX()
	y := margin

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", snap.Score), x, y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL %d", snap.Level), x, y+16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES %d", snap.Lines), x, y+32)

	y += 64
	ebitenutil.DebugPrintAt(screen, "HOLD", x, y)
	if snap.HasHeld {
		drawPreview(screen, snap.Held, x, y+20, !snap.CanHold)
	}

	y += 20 + 5*previewCell
	ebitenutil.DebugPrintAt(screen, "NEXT", x, y)
	y += 20
	for _, shape := range snap.Next {
		drawPreview(screen, shape, x, y, false)
		y += (shape.Rows() + 1) * previewCell
	}
}

func drawBanner(screen *ebiten.Image, l layout, text string) {
	w := float32(l.cols * cellSize)
	vector.DrawFilledRect(screen, margin, margin, w, float32(l.rows*cellSize), dimmed, false)
	ebitenutil.DebugPrintAt(screen, text, margin+cellSize, margin+l.rows*cellSize/2)
}
