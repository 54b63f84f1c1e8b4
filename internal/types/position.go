// internal/types/position.go
package types

// Position represents a cursor or text position within a document or editor.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is a selection between two positions. End is exclusive.
// An empty range (Start == End) is a plain cursor.
type Range struct {
	Start Position
	End   Position
}

// Normalized returns the range with Start <= End.
func (r Range) Normalized() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range is a bare cursor.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Collapse returns an empty range at pos.
func Collapse(pos Position) Range {
	return Range{Start: pos, End: pos}
}
