// Package container decides which elements are scroll containers and whether
// they can scroll further in a direction.
package container

import (
	"errors"

	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/geometry"
)

// DefaultMaxDepth bounds ancestor walks.
const DefaultMaxDepth = 256

// ErrNotContainer is logged when a scroll query is made against an element
// that is not a scroll container.
var ErrNotContainer = errors.New("element is not a scroll container")

// Model answers container questions relative to one document root.
type Model struct {
	root     dom.Element
	maxDepth int
	log      logr.Logger
}

// New creates a Model. A non-positive maxDepth selects DefaultMaxDepth.
func New(root dom.Element, maxDepth int, log logr.Logger) *Model {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Model{root: root, maxDepth: maxDepth, log: log.WithName("container")}
}

// Root returns the document root, the terminal container.
func (m *Model) Root() dom.Element {
	return m.root
}

// MaxDepth returns the ancestor walk bound.
func (m *Model) MaxDepth() int {
	return m.maxDepth
}

// IsRoot reports whether el is the document root.
func (m *Model) IsRoot(el dom.Element) bool {
	return el != nil && el == m.root
}

// IsScrollContainer reports whether el clips overflow and can scroll on at
// least one axis. The document root always qualifies.
func (m *Model) IsScrollContainer(el dom.Element) bool {
	if el == nil {
		return false
	}
	if m.IsRoot(el) {
		return true
	}

	ox, oy := el.Overflow()
	if ox == dom.OverflowScroll || oy == dom.OverflowScroll {
		return true
	}

	sm := el.ScrollMetrics()
	if scrollable(ox) && sm.ScrollWidth > sm.ClientWidth {
		return true
	}
	return scrollable(oy) && sm.ScrollHeight > sm.ClientHeight
}

// scrollable reports whether overflowing content on an axis can be scrolled to.
func scrollable(o dom.Overflow) bool {
	return o != dom.OverflowVisible && o != dom.OverflowHidden && o != ""
}

// For returns the nearest scroll container strictly above el. The search
// starts at el's parent, so a container's own container is the next one up.
// The root is returned for nil, for the root itself, when nothing above
// qualifies and when the walk exceeds the depth bound.
func (m *Model) For(el dom.Element) dom.Element {
	if el == nil || m.IsRoot(el) {
		return m.root
	}

	cur := el.Parent()
	for depth := 0; cur != nil; depth++ {
		if depth >= m.maxDepth {
			m.log.Info("container walk exceeded depth bound, using root", "element", el.ID(), "maxDepth", m.maxDepth)
			return m.root
		}
		if m.IsScrollContainer(cur) {
			return cur
		}
		cur = cur.Parent()
	}
	return m.root
}

// CanScroll reports whether c has scroll room left in dir. A one pixel slack
// absorbs fractional extents on the down and right edges.
func (m *Model) CanScroll(c dom.Element, dir geometry.Direction) bool {
	if !m.IsScrollContainer(c) {
		id := "<nil>"
		if c != nil {
			id = c.ID()
		}
		m.log.Error(ErrNotContainer, "scroll query on non-container", "element", id, "direction", dir.String())
		return false
	}

	sm := c.ScrollMetrics()
	switch dir {
	case geometry.Up:
		return sm.ScrollTop > 0
	case geometry.Down:
		return sm.ScrollTop < sm.ScrollHeight-sm.ClientHeight-1
	case geometry.Left:
		return sm.ScrollLeft > 0
	case geometry.Right:
		return sm.ScrollLeft < sm.ScrollWidth-sm.ClientWidth-1
	}

	m.log.Info("scroll query with invalid direction", "element", c.ID(), "direction", int(dir))
	return false
}
