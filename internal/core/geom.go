// Package core provides the screen buffer, input actions and geometry shared
// by the game simulation and the terminal platform. It has no dependency on
// Bubble Tea so game logic stays testable.
package core

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether r and other overlap. Touching edges do not
// count.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	return r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Follow returns a w×h viewport centered on (x, y) and clamped to a world
// of worldW×worldH. A world smaller than the viewport is anchored at 0.
func Follow(x, y, w, h, worldW, worldH int) Rect {
	vx := Clamp(x-w/2, 0, Max(0, worldW-w))
	vy := Clamp(y-h/2, 0, Max(0, worldH-h))
	return NewRect(vx, vy, w, h)
}

// Clamp restricts val to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
