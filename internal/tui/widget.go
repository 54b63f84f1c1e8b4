package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/clipboard"
	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/input"
	"github.com/bethropolis/fencedit/internal/theme"
	"github.com/bethropolis/fencedit/internal/types"
	"github.com/bethropolis/fencedit/internal/utils"
)

// KeyboardSource tags edits typed into a widget.
const KeyboardSource = "keyboard"

// Widget draws an editor.Model into an area of the screen and applies
// widget actions to it. It satisfies editor.Editor through the model.
type Widget struct {
	*editor.Model
	area  types.Rect
	viewY int
	viewX int
}

// NewWidget wraps m for drawing into area.
func NewWidget(m *editor.Model, area types.Rect) *Widget {
	return &Widget{Model: m, area: area}
}

// WidgetMounter mounts editors as terminal widgets.
type WidgetMounter struct {
	Clipboard clipboard.Clipboard
}

// Mount implements editor.Mounter.
func (wm WidgetMounter) Mount(c editor.Container, text, lang string, opts editor.Options) (editor.Editor, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("mount editor: empty container %dx%d", c.Width, c.Height)
	}
	m := editor.NewModel(text, lang, opts, wm.Clipboard)
	return NewWidget(m, types.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}), nil
}

// Area returns the screen area of the widget.
func (w *Widget) Area() types.Rect { return w.area }

// SetArea moves or resizes the widget.
func (w *Widget) SetArea(area types.Rect) {
	w.area = area
	w.ScrollToCursor()
}

// Viewport returns the first visible line and column.
func (w *Widget) Viewport() (int, int) { return w.viewY, w.viewX }

func (w *Widget) tabWidth() int {
	if tw := w.Options().TabWidth; tw > 0 {
		return tw
	}
	return defaultTabWidth
}

func (w *Widget) gutter() int {
	if !w.Options().LineNumbers {
		return 0
	}
	g := gutterWidth(w.LineCount())
	if g >= w.area.Width {
		return 0
	}
	return g
}

// Apply performs a decoded key action. It reports whether the action was
// handled.
func (w *Widget) Apply(ev input.ActionEvent) bool {
	switch ev.Action {
	case input.ActionMoveUp:
		w.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		w.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		w.MoveCursor(0, -1)
	case input.ActionMoveRight:
		w.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		w.MoveCursor(-max(1, w.area.Height-1), 0)
	case input.ActionMovePageDown:
		w.MoveCursor(max(1, w.area.Height-1), 0)
	case input.ActionMoveHome:
		w.MoveToLineStart()
	case input.ActionMoveEnd:
		w.MoveToLineEnd()
	case input.ActionInsertRune:
		w.InsertText(KeyboardSource, string(ev.Rune))
	case input.ActionInsertNewLine:
		indent := utils.LeadingWhitespace(w.Line(w.Cursor().Line))
		w.InsertText(KeyboardSource, "\n"+indent)
	case input.ActionInsertTab:
		w.InsertText(KeyboardSource, strings.Repeat(" ", w.tabWidth()))
	case input.ActionDeleteCharBackward:
		w.DeleteBackward(KeyboardSource)
	case input.ActionDeleteCharForward:
		w.DeleteForward(KeyboardSource)
	case input.ActionUndo:
		w.Undo()
	case input.ActionRedo:
		w.Redo()
	default:
		return false
	}
	w.ScrollToCursor()
	return true
}

// ScrollToCursor adjusts the viewport so the cursor is visible.
func (w *Widget) ScrollToCursor() {
	cursor := w.Cursor()
	height := w.area.Height
	width := w.area.Width - w.gutter()
	if height <= 0 || width <= 0 {
		return
	}

	if cursor.Line < w.viewY {
		w.viewY = cursor.Line
	} else if cursor.Line >= w.viewY+height {
		w.viewY = cursor.Line - height + 1
	}

	col := visualColumn(w.Line(cursor.Line), cursor.Col, w.tabWidth())
	if col < w.viewX {
		w.viewX = col
	} else if col >= w.viewX+width {
		w.viewX = col - width + 1
	}
}

// Draw renders the visible lines. The terminal cursor is placed only when
// focused.
func (w *Widget) Draw(s tcell.Screen, th *theme.Theme, focused bool) {
	area := w.area
	if area.Width <= 0 || area.Height <= 0 {
		return
	}

	defaultStyle := th.GetStyle(theme.StyleDefault)
	lineNumberStyle := th.GetStyle(theme.StyleLineNumber)
	selectionStyle := th.GetStyle(theme.StyleSelection)

	fill(s, area, defaultStyle)

	gutter := w.gutter()
	digits := gutter - 1
	cursor := w.Cursor()
	selections, _ := w.GetSelections()
	tabWidth := w.tabWidth()

	for row := 0; row < area.Height; row++ {
		lineIdx := w.viewY + row
		if lineIdx >= w.LineCount() {
			break
		}
		y := area.Y + row

		if gutter > 0 {
			style := lineNumberStyle
			if lineIdx == cursor.Line {
				style = style.Bold(true)
			}
			drawString(s, area.X, y, area.X+digits, fmt.Sprintf("%*d", digits, lineIdx+1), style)
		}

		drawLine(s, area.X+gutter, y, area.Right(), w.Line(lineIdx), w.viewX, tabWidth, func(col int) tcell.Style {
			pos := types.Position{Line: lineIdx, Col: col}
			for _, sel := range selections {
				sel = sel.Normalized()
				if isPositionWithin(pos, sel.Start, sel.End) {
					return selectionStyle
				}
			}
			return defaultStyle
		})
	}

	if !focused {
		return
	}
	x := area.X + gutter + visualColumn(w.Line(cursor.Line), cursor.Col, tabWidth) - w.viewX
	y := area.Y + cursor.Line - w.viewY
	if x < area.X+gutter || x >= area.Right() || y < area.Y || y >= area.Bottom() {
		s.HideCursor()
		return
	}
	s.ShowCursor(x, y)
}

// PositionAt maps a screen cell to a text position. ok is false outside the
// text area or below the last line.
func (w *Widget) PositionAt(x, y int) (types.Position, bool) {
	gutter := w.gutter()
	if !w.area.Contains(types.Point{X: x, Y: y}) || x < w.area.X+gutter {
		return types.Position{}, false
	}
	line := w.viewY + y - w.area.Y
	if line >= w.LineCount() {
		return types.Position{}, false
	}
	col := runeIndexAt(w.Line(line), x-w.area.X-gutter+w.viewX, w.tabWidth())
	return types.Position{Line: line, Col: col}, true
}

// CellRect returns the screen cells covering runes startCol..endCol of line,
// as drawn with the current viewport.
func (w *Widget) CellRect(line, startCol, endCol int) types.Rect {
	text := w.Line(line)
	tabWidth := w.tabWidth()
	x0 := visualColumn(text, startCol, tabWidth)
	x1 := visualColumn(text, endCol, tabWidth)
	return types.Rect{
		X:      w.area.X + w.gutter() + x0 - w.viewX,
		Y:      w.area.Y + line - w.viewY,
		Width:  x1 - x0,
		Height: 1,
	}
}
