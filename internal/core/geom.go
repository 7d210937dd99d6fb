// Package core provides the platform-side primitives shared by the game
// adapter and the terminal front-ends: screen buffer, input frames and
// runtime settings. It has no dependency on Bubble Tea so game code stays
// testable without a terminal.
package core

// Rect is a screen-space rectangle in character cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) lies inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenterIn returns r moved so it is centered inside outer. Rectangles larger
// than outer are pinned to its top-left corner.
func (r Rect) CenterIn(outer Rect) Rect {
	r.X = outer.X + max((outer.W-r.W)/2, 0)
	r.Y = outer.Y + max((outer.H-r.H)/2, 0)
	return r
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap maps val into [0, n), wrapping around at both ends.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
