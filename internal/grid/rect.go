package grid

import "fmt"

// Point is an immutable pixel position on the screen.
type Point struct {
	X int
	Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Rectangle is an immutable pixel region. Width and height are never negative.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the midpoint of the rectangle, truncating toward the top-left.
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// TopLeft returns the top-left corner.
func (r Rectangle) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// BottomRight returns the corner one past the last pixel of the rectangle.
func (r Rectangle) BottomRight() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Contains reports whether the point falls inside the rectangle.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	x := minInt(r.X, other.X)
	y := minInt(r.Y, other.Y)
	right := maxInt(r.X+r.Width, other.X+other.Width)
	bottom := maxInt(r.Y+r.Height, other.Y+other.Height)
	return Rectangle{X: x, Y: y, Width: right - x, Height: bottom - y}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%dx%d at (%d, %d)", r.Width, r.Height, r.X, r.Y)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
