package geometry

import (
	"math"
	"strings"
)

// Direction is one of the four arrow directions. The zero value is invalid.
type Direction int

const (
	Up Direction = iota + 1
	Right
	Down
	Left
)

// Directions lists every valid direction in enum order.
var Directions = []Direction{Up, Right, Down, Left}

// Valid reports whether d is one of Up, Right, Down or Left.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "invalid"
	}
}

// ParseDirection maps "up", "right", "down" and "left" (any case) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	}
	return 0, false
}

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle, or 0 when empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains returns true if p is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Outset returns a new Rect grown by n on every side.
func (r Rect) Outset(n float64) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Union returns the smallest rectangle that contains both rectangles.
// If either rectangle is empty, returns the other rectangle.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// TestingPoint returns the point of rect that faces the search direction.
//
// Vertical searches use the horizontal midpoint and the bottom edge for Up or
// the top edge for Down. Horizontal searches use the vertical midpoint and the
// left edge for Right or the right edge for Left.
func TestingPoint(dir Direction, rect Rect) Point {
	if dir.Vertical() {
		pt := Point{X: rect.X + rect.Width/2}
		if dir == Up {
			pt.Y = rect.Bottom()
		} else {
			pt.Y = rect.Top()
		}
		return pt
	}

	pt := Point{Y: rect.Y + rect.Height/2}
	if dir == Right {
		pt.X = rect.Left()
	} else {
		pt.X = rect.Right()
	}
	return pt
}

// DistanceSquared is the squared Euclidean distance between a and b.
func DistanceSquared(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Beyond reports whether rect lies strictly on the far side of pt in dir.
// Exact alignment never counts.
func Beyond(dir Direction, pt Point, rect Rect) bool {
	switch dir {
	case Up:
		return rect.Bottom() < pt.Y
	case Right:
		return rect.Left() > pt.X
	case Down:
		return rect.Top() > pt.Y
	case Left:
		return rect.Right() < pt.X
	}
	return false
}
