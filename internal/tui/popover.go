package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/fencedit/internal/preview"
	"github.com/bethropolis/fencedit/internal/theme"
	"github.com/bethropolis/fencedit/internal/types"
)

// lineSource is the part of an editor a popover needs to draw it.
type lineSource interface {
	LineCount() int
	Line(i int) string
}

// Popover is a hover surface that can host one preview view.
type Popover struct {
	view *preview.View
}

// ShowPreview implements preview.Host.
func (p *Popover) ShowPreview(v *preview.View) { p.view = v }

// View returns the hosted view, or nil when nothing is shown.
func (p *Popover) View() *preview.View {
	if p.view == nil || p.view.Disposed() {
		return nil
	}
	return p.view
}

// Clear forgets the hosted view without disposing it.
func (p *Popover) Clear() { p.view = nil }

// Draw renders a bordered panel with the preview text, clipped to the screen.
func (p *Popover) Draw(s tcell.Screen, th *theme.Theme) {
	v := p.View()
	if v == nil {
		return
	}
	bounds := v.Bounds()
	if bounds.Width < 3 || bounds.Height < 3 {
		return
	}
	border := th.GetStyle(theme.StylePopoverBorder)
	body := th.GetStyle(theme.StylePopover)

	fill(s, bounds, body)
	drawBox(s, bounds, border)
	if v.Ext != "" {
		drawString(s, bounds.X+2, bounds.Y, bounds.Right()-1, " "+v.Ext+" ", border)
	}

	src, ok := v.Editor.(lineSource)
	if !ok {
		return
	}
	inner := types.Rect{X: bounds.X + 1, Y: bounds.Y + 1, Width: bounds.Width - 2, Height: bounds.Height - 2}
	for row := 0; row < inner.Height && row < src.LineCount(); row++ {
		drawLine(s, inner.X, inner.Y+row, inner.Right(), src.Line(row), 0, defaultTabWidth, func(int) tcell.Style {
			return body
		})
	}
}

func drawBox(s tcell.Screen, r types.Rect, style tcell.Style) {
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		s.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
	s.SetContent(right, r.Y, tcell.RuneURCorner, nil, style)
	s.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

var _ preview.Host = (*Popover)(nil)
