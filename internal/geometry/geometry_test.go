package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestingPoint(t *testing.T) {
	type tc struct {
		dir  Direction
		want Point
	}

	rect := NewRect(10, 20, 100, 50)

	tests := map[string]tc{
		"up uses bottom edge":  {dir: Up, want: Point{X: 60, Y: 70}},
		"down uses top edge":   {dir: Down, want: Point{X: 60, Y: 20}},
		"right uses left edge": {dir: Right, want: Point{X: 10, Y: 45}},
		"left uses right edge": {dir: Left, want: Point{X: 110, Y: 45}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, TestingPoint(tt.dir, rect))
		})
	}
}

func TestDistanceSquared(t *testing.T) {
	assert.Equal(t, 25.0, DistanceSquared(Point{0, 0}, Point{3, 4}))
	assert.Equal(t, 25.0, DistanceSquared(Point{3, 4}, Point{0, 0}))
	assert.Zero(t, DistanceSquared(Point{7, 7}, Point{7, 7}))
}

func TestBeyond_IsStrict(t *testing.T) {
	pt := Point{X: 50, Y: 50}

	tests := map[string]struct {
		dir  Direction
		rect Rect
		want bool
	}{
		"up above":          {Up, NewRect(0, 0, 10, 49), true},
		"up touching":       {Up, NewRect(0, 0, 10, 50), false},
		"down below":        {Down, NewRect(0, 51, 10, 10), true},
		"down touching":     {Down, NewRect(0, 50, 10, 10), false},
		"right of point":    {Right, NewRect(51, 0, 10, 10), true},
		"right touching":    {Right, NewRect(50, 0, 10, 10), false},
		"left of point":     {Left, NewRect(0, 0, 49, 10), true},
		"left touching":     {Left, NewRect(40, 0, 10, 10), false},
		"invalid direction": {Direction(0), NewRect(0, 0, 1, 1), false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Beyond(tt.dir, pt, tt.rect))
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	got, ok := ParseDirection(" DOWN ")
	assert.True(t, ok)
	assert.Equal(t, Down, got)

	_, ok = ParseDirection("diagonal")
	assert.False(t, ok)
	assert.False(t, Direction(0).Valid())
	assert.Equal(t, "invalid", Direction(9).String())
}

func TestRect_Intersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	assert.Equal(t, NewRect(5, 5, 5, 5), a.Intersect(b))
	assert.True(t, a.Intersect(NewRect(10, 0, 5, 5)).IsEmpty(), "touching edges do not overlap")
	assert.Equal(t, NewRect(0, 0, 15, 15), a.Union(b))
	assert.Equal(t, NewRect(-1, -1, 12, 12), a.Outset(1))
	assert.Equal(t, 100.0, a.Area())
	assert.True(t, a.Contains(Point{0, 0}))
	assert.False(t, a.Contains(Point{10, 10}))
}
