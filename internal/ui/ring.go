package ui

import (
	"snav/internal/dom"
	"snav/internal/geometry"
	"snav/internal/interest"
)

// Terminal ring geometry: no margin and a one-cell border, so the ring sits
// on the cells surrounding the element.
const (
	ringMargin = 0
	ringBorder = 1
)

// Ring is the terminal interest indicator. It tracks the element it was last
// refreshed with and reads that element's live geometry at render time, so it
// follows scrolling like a ring positioned in the page would.
type Ring struct {
	target dom.Element
}

func NewRing() *Ring {
	return &Ring{}
}

// Refresh shows the ring around el, or hides it when el is nil.
func (r *Ring) Refresh(el dom.Element) {
	r.target = el
}

func (r *Ring) Target() dom.Element {
	return r.target
}

// Rect returns the ring's outer box in viewport coordinates. It reports false
// when the ring is hidden or its element has no geometry.
func (r *Ring) Rect() (geometry.Rect, bool) {
	if r.target == nil {
		return geometry.Rect{}, false
	}
	rect, err := r.target.BoundingRect()
	if err != nil {
		return geometry.Rect{}, false
	}
	return interest.RingRect(rect, ringMargin, ringBorder), true
}
