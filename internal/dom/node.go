package dom

import (
	"strings"

	"golang.org/x/net/html"

	"snav/internal/geometry"
)

// Node is an element of an in-memory Document.
//
// Each Node is backed by an *html.Node so selectors can be matched against it.
// Its frame is the layout box in page coordinates before any scrolling; the
// bounding rect subtracts the scroll offsets of every ancestor.
type Node struct {
	doc      *Document
	parent   *Node
	children []*Node
	source   *html.Node

	frame     geometry.Rect
	overflowX Overflow
	overflowY Overflow
	fixed     bool
	text      string

	scrollX, scrollY float64
	clicks           int
}

// ID returns the id attribute, falling back to the tag name.
func (n *Node) ID() string {
	if id, ok := n.Attr("id"); ok && id != "" {
		return id
	}
	if n.parent == nil && n.doc != nil && n.doc.root == n {
		return "#document"
	}
	return n.Tag()
}

// Tag returns the lower-case tag name.
func (n *Node) Tag() string {
	if n.source == nil {
		return ""
	}
	if n.source.Type == html.DocumentNode {
		return "#document"
	}
	return n.source.Data
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	if n.source == nil {
		return "", false
	}
	for _, a := range n.source.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Source returns the html node backing n.
func (n *Node) Source() *html.Node {
	return n.source
}

// Text returns the label rendered for n.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces the label rendered for n.
func (n *Node) SetText(text string) {
	n.text = text
}

// Frame returns the unscrolled layout box in page coordinates.
func (n *Node) Frame() geometry.Rect {
	return n.frame
}

// SetFrame moves or resizes n.
func (n *Node) SetFrame(r geometry.Rect) {
	n.frame = r
}

// SetOverflow sets the computed overflow on each axis.
func (n *Node) SetOverflow(x, y Overflow) {
	n.overflowX = x
	n.overflowY = y
}

// Fixed reports whether n is position: fixed.
func (n *Node) Fixed() bool {
	return n.fixed
}

// SetFixed marks n as position: fixed. Fixed nodes ignore the page scroll.
func (n *Node) SetFixed(fixed bool) {
	n.fixed = fixed
}

// InFixed reports whether n or one of its ancestors is position: fixed.
func (n *Node) InFixed() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.fixed {
			return true
		}
	}
	return false
}

// Clicks returns how many times n has been activated.
func (n *Node) Clicks() int {
	return n.clicks
}

// Attached reports whether n is reachable from its document's root.
func (n *Node) Attached() bool {
	if n.doc == nil {
		return false
	}
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur == n.doc.root
}

// BoundingRect returns n's border box in viewport coordinates.
func (n *Node) BoundingRect() (geometry.Rect, error) {
	if !n.Attached() {
		return geometry.Rect{}, ErrDetached
	}
	if n == n.doc.root {
		return n.doc.Viewport(), nil
	}

	// Fixed boxes are laid out against the viewport and never scroll.
	if n.InFixed() {
		return n.frame, nil
	}

	rect := n.frame
	for a := n.parent; a != nil; a = a.parent {
		rect = rect.Translate(-a.scrollX, -a.scrollY)
	}
	return rect, nil
}

// ScrollMetrics reports n's scroll offsets and extents.
func (n *Node) ScrollMetrics() ScrollMetrics {
	client := n.frame
	if n.doc != nil && n == n.doc.root {
		client = n.doc.Viewport()
	}
	content := n.contentExtent()
	return ScrollMetrics{
		ScrollTop:    n.scrollY,
		ScrollLeft:   n.scrollX,
		ScrollWidth:  max(client.Width, content.Right()-n.frame.X),
		ScrollHeight: max(client.Height, content.Bottom()-n.frame.Y),
		ClientWidth:  client.Width,
		ClientHeight: client.Height,
	}
}

// contentExtent is the union of the frames of every descendant that is not
// clipped away by a nested clipping element.
func (n *Node) contentExtent() geometry.Rect {
	var extent geometry.Rect
	for _, c := range n.children {
		extent = extent.Union(c.frame)
		x, y := c.Overflow()
		if x.Clips() || y.Clips() {
			continue
		}
		extent = extent.Union(c.contentExtent())
	}
	return extent
}

// Overflow returns the computed overflow on each axis. The root scrolls.
func (n *Node) Overflow() (x, y Overflow) {
	if n.doc != nil && n == n.doc.root {
		return OverflowAuto, OverflowAuto
	}
	x, y = n.overflowX, n.overflowY
	if x == "" {
		x = OverflowVisible
	}
	if y == "" {
		y = OverflowVisible
	}
	return x, y
}

// Parent returns the parent element, or nil for the root and detached subtrees.
func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode is Parent without the interface conversion.
func (n *Node) ParentNode() *Node {
	return n.parent
}

// Children returns the child elements in document order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// ChildNodes returns the children without the interface conversion.
func (n *Node) ChildNodes() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) String() string {
	return n.ID()
}
