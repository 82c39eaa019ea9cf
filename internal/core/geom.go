// Package core provides fundamental types and utilities shared by the tanks
// engine and the terminal platform. It contains no external dependencies
// (especially no Bubble Tea) to keep simulation logic pure and testable.
package core

// Rect is an axis-aligned bounding box in arena pixels.
// Every collision in the simulation is a Rect overlap test.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// TopLeft returns the top-left corner as a Point.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Moved returns a copy of the rectangle translated by (dx, dy).
func (r Rect) Moved(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// At returns a copy of the rectangle with its top-left corner at p.
func (r Rect) At(p Point) Rect {
	return Rect{X: p.X, Y: p.Y, W: r.W, H: r.H}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// IndexOfIntersect returns the index of the first rectangle in list that
// overlaps r, or -1 when none does.
func (r Rect) IndexOfIntersect(list []Rect) int {
	for i, other := range list {
		if r.Intersects(other) {
			return i
		}
	}
	return -1
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Point is a pixel position in the arena.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Nearest rounds num to the nearest multiple of base.
// Halfway values round away from zero.
func Nearest(num, base int) int {
	if base <= 0 {
		return num
	}
	if num < 0 {
		return -Nearest(-num, base)
	}
	return ((num + base/2) / base) * base
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

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
