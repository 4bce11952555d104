package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
)

var cellColors = [...]lipgloss.Color{
	tetromino.ColorNone:    "236",
	tetromino.ColorSkyBlue: "51",
	tetromino.ColorYellow:  "226",
	tetromino.ColorOrange:  "208",
	tetromino.ColorBlue:    "33",
	tetromino.ColorRed:     "196",
	tetromino.ColorGreen:   "46",
	tetromino.ColorPurple:  "129",
}

var (
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	sidebarStyle = lipgloss.NewStyle().PaddingLeft(2)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	ghostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(cellColors[tetromino.ColorNone])
	cellStyles   [len(cellColors)]lipgloss.Style
)

func init() {
	for i, c := range cellColors {
		cellStyles[i] = lipgloss.NewStyle().Background(c)
	}
}

func cell(snap *game.Snapshot, row, col int) string {
	if snap.IsGhost(row, col) {
		return ghostStyle.Render("[]")
	}
	c := snap.Cell(row, col)
	if int(c) >= len(cellStyles) {
		c = tetromino.ColorNone
	}
	return cellStyles[c].Render("  ")
}

func renderBoard(snap *game.Snapshot) string {
	var b strings.Builder
	for row := 0; row < snap.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < snap.Cols; col++ {
			b.WriteString(cell(snap, row, col))
		}
	}
	return frameStyle.Render(b.String())
}

func renderShape(shape tetromino.Shape, dim bool) string {
	style := cellStyles[shape.Color()]
	if dim {
		style = style.Faint(true)
	}
	var b strings.Builder
	for r := 0; r < shape.Rows(); r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < shape.Cols(); c++ {
			if shape.Occupies(tetromino.Coord{Row: r, Col: c}) {
				b.WriteString(style.Render("  "))
			} else {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

func renderSidebar(snap *game.Snapshot, status string) string {
	parts := []string{
		labelStyle.Render("SCORE") + fmt.Sprintf(" %d", snap.Score),
		labelStyle.Render("LEVEL") + fmt.Sprintf(" %d", snap.Level),
		labelStyle.Render("LINES") + fmt.Sprintf(" %d", snap.Lines),
		"",
		labelStyle.Render("HOLD"),
	}
	if snap.HasHeld {
		parts = append(parts, renderShape(snap.Held, !snap.CanHold))
	}
	parts = append(parts, "", labelStyle.Render("NEXT"))
	for _, s := range snap.Next {
		parts = append(parts, renderShape(s, false), "")
	}

	switch {
	case snap.Over:
		parts = append(parts, bannerStyle.Render("GAME OVER"), "r to restart")
	case snap.Paused:
		parts = append(parts, bannerStyle.Render("PAUSED"), "any key to play")
	}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, "", "q to quit")
	return sidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) View() string {
	snap := &m.state.snap
	return lipgloss.JoinHorizontal(lipgloss.Top, renderBoard(snap), renderSidebar(snap, m.state.status))
}
