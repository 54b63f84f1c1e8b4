// internal/tui/drawing.go
package tui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/fencedit/internal/types"
)

const defaultTabWidth = 4

// visualColumn returns the screen column of rune index runeIndex in line,
// expanding tabs to tabWidth stops.
func visualColumn(line string, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	visual, current := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if current >= runeIndex {
			break
		}
		runes := gr.Runes()
		visual += clusterWidth(runes, gr.Width(), visual, tabWidth)
		current += len(runes)
	}
	return visual
}

// runeIndexAt is the inverse of visualColumn: it returns the rune index of
// the cluster covering screen column col, or the line length past the end.
func runeIndexAt(line string, col, tabWidth int) int {
	visual, current := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		visual += clusterWidth(runes, gr.Width(), visual, tabWidth)
		if col < visual {
			return current
		}
		current += len(runes)
	}
	return current
}

func clusterWidth(runes []rune, width, visualX, tabWidth int) int {
	if runes[0] == '\t' {
		return tabWidth - visualX%tabWidth
	}
	return width
}

// isPositionWithin checks pos against the half-open range [start, end).
// start must not be after end.
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

// fill paints area with style.
func fill(s tcell.Screen, area types.Rect, style tcell.Style) {
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawString draws text at (x, y), clipped at maxX. It returns the column
// after the last cell drawn.
func drawString(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		width := gr.Width()
		if x+width > maxX {
			break
		}
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
	return x
}

// gutterWidth returns the width of the line number column for lineCount
// lines, including one cell of padding.
func gutterWidth(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(strconv.Itoa(lineCount)) + 1
}

// lineStyler picks the style of the rune at col on the line being drawn.
type lineStyler func(col int) tcell.Style

// drawLine draws line from visual column viewX into [x, maxX) on row y.
func drawLine(s tcell.Screen, x, y, maxX int, line string, viewX, tabWidth int, styleAt lineStyler) {
	visualX, runeIndex := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		width := clusterWidth(runes, gr.Width(), visualX, tabWidth)
		screenX := x + visualX - viewX
		if screenX >= maxX {
			break
		}

		if screenX >= x {
			style := styleAt(runeIndex)
			if runes[0] == '\t' {
				for i := 0; i < width && screenX+i < maxX; i++ {
					s.SetContent(screenX+i, y, ' ', nil, style)
				}
			} else if screenX+width <= maxX {
				s.SetContent(screenX, y, runes[0], runes[1:], style)
			}
		}

		visualX += width
		runeIndex += len(runes)
	}
}
