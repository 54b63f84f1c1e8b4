package preview

import "github.com/bethropolis/fencedit/internal/types"

// Place computes the top-left corner of a panelWidth x panelHeight preview
// for a link occupying anchor, in a viewport viewportHeight rows tall.
//
// The panel goes below the anchor when the space below exceeds its height,
// above it when the space above is enough, and otherwise to the right of the
// anchor, vertically centred on it; side reports the last case. The result
// is not clamped to the viewport.
func Place(anchor types.Rect, viewportHeight, panelWidth, panelHeight, gap int) (origin types.Point, side bool) {
	spaceBelow := viewportHeight - anchor.Bottom() - gap
	spaceAbove := anchor.Y - gap

	switch {
	case spaceBelow > panelHeight:
		return types.Point{X: anchor.X + gap, Y: anchor.Bottom() + gap}, false
	case spaceAbove >= panelHeight:
		return types.Point{X: anchor.X + gap, Y: anchor.Y - panelHeight - gap}, false
	default:
		centre := anchor.Y + anchor.Height/2
		return types.Point{X: anchor.Right() + gap, Y: centre - panelHeight/2}, true
	}
}
