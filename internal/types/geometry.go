// internal/types/geometry.go
package types

// Point is a screen cell coordinate.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle. Right and Bottom are exclusive.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the first column after the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row after the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
