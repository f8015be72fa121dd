// Package dom models the document that spatial navigation runs over.
//
// Element is the handle the navigation core consumes: live geometry, scroll
// metrics, computed overflow and ancestry. FocusSurface is the focus and
// activation capability of the host. Document is an in-memory implementation
// of both, used by the terminal host, the loaders and the tests.
package dom

import (
	"errors"

	"snav/internal/geometry"
)

// ErrDetached is returned by geometry queries on an element that is no longer
// part of a document.
var ErrDetached = errors.New("element is not attached to a document")

// Overflow is a computed overflow value for one axis.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowClip    Overflow = "clip"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

// ParseOverflow maps a CSS overflow keyword to an Overflow. Unknown values are
// reported as not ok.
func ParseOverflow(s string) (Overflow, bool) {
	switch o := Overflow(s); o {
	case OverflowVisible, OverflowHidden, OverflowClip, OverflowScroll, OverflowAuto:
		return o, true
	}
	return "", false
}

// Clips reports whether content overflowing on this axis is clipped.
func (o Overflow) Clips() bool {
	return o != "" && o != OverflowVisible
}

// ScrollMetrics mirrors the scrollTop/scrollLeft, scrollWidth/scrollHeight and
// clientWidth/clientHeight of an element.
type ScrollMetrics struct {
	ScrollTop    float64
	ScrollLeft   float64
	ScrollWidth  float64
	ScrollHeight float64
	ClientWidth  float64
	ClientHeight float64
}

// MaxScroll returns the largest scroll offsets on each axis.
func (m ScrollMetrics) MaxScroll() (maxLeft, maxTop float64) {
	return max(0, m.ScrollWidth-m.ClientWidth), max(0, m.ScrollHeight-m.ClientHeight)
}

// Element is an opaque handle to a node in an externally managed document.
type Element interface {
	// ID identifies the element for logs and listings.
	ID() string

	// BoundingRect returns the border box in viewport coordinates.
	// Detached elements return ErrDetached.
	BoundingRect() (geometry.Rect, error)

	ScrollMetrics() ScrollMetrics

	// Overflow returns the computed overflow on the x and y axes.
	Overflow() (x, y Overflow)

	// Parent returns nil for the document root.
	Parent() Element

	Children() []Element
}

// FocusSurface is the host's focus and activation capability.
type FocusSurface interface {
	Focus(el Element)
	Click(el Element)
	Blur(el Element)
	HasFocus(el Element) bool
}

// Viewport reports the visible area of a document in viewport coordinates.
type Viewport interface {
	Viewport() geometry.Rect
}

// Walk visits el and its descendants in document order. Returning false from
// fn skips the children of the visited element.
func Walk(el Element, fn func(Element) bool) {
	if el == nil {
		return
	}
	if !fn(el) {
		return
	}
	for _, child := range el.Children() {
		Walk(child, fn)
	}
}
