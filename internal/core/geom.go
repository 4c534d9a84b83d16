// Package core provides the platform types shared by the tower defense
// front-ends: the colored character screen, abstract input and game status.
// It has no Bubble Tea dependency so game code stays pure and testable.
package core

// Rect is an axis-aligned area on the character screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// GridPoint is a cell coordinate on the game grid (column, row).
type GridPoint struct {
	Col, Row int
}

// Move returns p shifted by (dc, dr) and clamped to a cols x rows grid.
func (p GridPoint) Move(dc, dr, cols, rows int) GridPoint {
	return GridPoint{
		Col: Clamp(p.Col+dc, 0, cols-1),
		Row: Clamp(p.Row+dr, 0, rows-1),
	}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
