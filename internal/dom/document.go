package dom

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"snav/internal/geometry"
)

// ErrNotChild is returned when removing a node from a parent it does not belong to.
var ErrNotChild = errors.New("node is not a child of the given parent")

// MutationObserver receives subtree additions and removals. Only the roots of
// the changed subtrees are reported; observers walk them when they need to.
type MutationObserver interface {
	ElementsAdded(roots []Element)
	ElementsRemoved(roots []Element)
}

// MutationFuncs adapts plain functions to a MutationObserver.
type MutationFuncs struct {
	Added   func(roots []Element)
	Removed func(roots []Element)
}

func (f MutationFuncs) ElementsAdded(roots []Element) {
	if f.Added != nil {
		f.Added(roots)
	}
}

func (f MutationFuncs) ElementsRemoved(roots []Element) {
	if f.Removed != nil {
		f.Removed(roots)
	}
}

// Document is an in-memory document with live geometry. It implements
// FocusSurface and Viewport.
type Document struct {
	root      *Node
	width     float64
	height    float64
	declared  *geometry.Rect
	focused   *Node
	observers []*observerEntry
}

type observerEntry struct {
	obs MutationObserver
}

// NewDocument creates an empty document with a viewport of the given size.
func NewDocument(width, height float64) *Document {
	d := &Document{width: width, height: height}
	d.root = &Node{
		doc:    d,
		source: &html.Node{Type: html.DocumentNode},
		frame:  geometry.NewRect(0, 0, width, height),
	}
	return d
}

// Root returns the document root.
func (d *Document) Root() *Node {
	return d.root
}

// Viewport returns the visible area in viewport coordinates.
func (d *Document) Viewport() geometry.Rect {
	return geometry.NewRect(0, 0, d.width, d.height)
}

// SetDeclaredSize records the viewport size the document asks for. Hosts may
// shrink the viewport to fit their screen but do not grow it past this size.
func (d *Document) SetDeclaredSize(width, height float64) {
	r := geometry.NewRect(0, 0, width, height)
	d.declared = &r
}

// DeclaredSize returns the recorded size, if any.
func (d *Document) DeclaredSize() (width, height float64, ok bool) {
	if d.declared == nil {
		return 0, 0, false
	}
	return d.declared.Width, d.declared.Height, true
}

// Resize changes the viewport size and re-clamps every scroll offset.
func (d *Document) Resize(width, height float64) {
	d.width, d.height = width, height
	d.root.frame = geometry.NewRect(0, 0, width, height)
	d.Walk(func(n *Node) bool {
		d.clampScroll(n)
		return true
	})
}

// Observe registers a mutation observer and returns a func that removes it.
func (d *Document) Observe(obs MutationObserver) func() {
	entry := &observerEntry{obs: obs}
	d.observers = append(d.observers, entry)
	return func() {
		for i, e := range d.observers {
			if e == entry {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// CreateElement creates a detached element. attrs are given as key/value pairs.
func (d *Document) CreateElement(tag string, frame geometry.Rect, attrs ...string) *Node {
	tag = strings.ToLower(tag)
	src := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		src.Attr = append(src.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return d.Adopt(src, frame)
}

// Adopt wraps an existing html element node. The html node must not already
// have a parent; AppendChild links it into the html tree.
func (d *Document) Adopt(src *html.Node, frame geometry.Rect) *Node {
	return &Node{doc: d, source: src, frame: frame}
}

// AppendChild appends child to parent, moving it if it already has a parent.
// Observers hear about the subtree being added when parent is attached, and
// about it being removed when a move takes it out of the document.
func (d *Document) AppendChild(parent, child *Node) {
	wasAttached := child.Attached()
	if child.parent != nil {
		d.detach(child)
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	if parent.source != nil && child.source != nil && child.source.Parent == nil {
		parent.source.AppendChild(child.source)
	}

	switch {
	case parent.Attached():
		for _, e := range d.snapshotObservers() {
			e.obs.ElementsAdded([]Element{child})
		}
	case wasAttached:
		if d.focused != nil && !d.focused.Attached() {
			d.focused = nil
		}
		for _, e := range d.snapshotObservers() {
			e.obs.ElementsRemoved([]Element{child})
		}
	}
}

// RemoveChild detaches child from parent. Removing a detached subtree is a
// no-op for observers.
func (d *Document) RemoveChild(parent, child *Node) error {
	if child.parent != parent {
		return ErrNotChild
	}
	wasAttached := child.Attached()
	d.detach(child)

	if d.focused != nil && !d.focused.Attached() {
		d.focused = nil
	}
	if wasAttached {
		for _, e := range d.snapshotObservers() {
			e.obs.ElementsRemoved([]Element{child})
		}
	}
	return nil
}

func (d *Document) detach(child *Node) {
	parent := child.parent
	for i, c := range parent.children {
		if c == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	if child.source != nil && child.source.Parent != nil {
		child.source.Parent.RemoveChild(child.source)
	}
}

// snapshotObservers lets observers unregister themselves while being notified.
func (d *Document) snapshotObservers() []*observerEntry {
	return append([]*observerEntry(nil), d.observers...)
}

// Walk visits attached nodes in document order, starting at the root.
// Returning false skips the visited node's children.
func (d *Document) Walk(fn func(*Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(d.root)
}

// ByID returns the first attached node with the given id attribute.
func (d *Document) ByID(id string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr("id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// ScrollTo sets n's scroll offset, clamped to its scrollable range.
// It reports whether the offset changed.
func (d *Document) ScrollTo(n *Node, x, y float64) bool {
	oldX, oldY := n.scrollX, n.scrollY
	n.scrollX, n.scrollY = x, y
	d.clampScroll(n)
	return n.scrollX != oldX || n.scrollY != oldY
}

// ScrollBy adjusts n's scroll offset by a delta.
func (d *Document) ScrollBy(n *Node, dx, dy float64) bool {
	return d.ScrollTo(n, n.scrollX+dx, n.scrollY+dy)
}

func (d *Document) clampScroll(n *Node) {
	maxX, maxY := n.ScrollMetrics().MaxScroll()
	n.scrollX = clamp(n.scrollX, 0, maxX)
	n.scrollY = clamp(n.scrollY, 0, maxY)
}

// ScrollIntoView scrolls every clipping ancestor of n minimally so that n
// becomes visible within it, innermost first.
func (d *Document) ScrollIntoView(n *Node) {
	if !n.Attached() || n == d.root || n.InFixed() {
		return
	}
	for a := n.parent; a != nil; a = a.parent {
		x, y := a.Overflow()
		if !x.Clips() && !y.Clips() {
			continue
		}
		rect, err := n.BoundingRect()
		if err != nil {
			return
		}
		view, err := a.BoundingRect()
		if err != nil {
			return
		}
		dx := scrollDelta(rect.Left(), rect.Right(), view.Left(), view.Right())
		dy := scrollDelta(rect.Top(), rect.Bottom(), view.Top(), view.Bottom())
		if dx != 0 || dy != 0 {
			d.ScrollBy(a, dx, dy)
		}
	}
}

// scrollDelta is the minimal offset change that brings [lo, hi] inside
// [viewLo, viewHi], preferring the leading edge when it does not fit.
func scrollDelta(lo, hi, viewLo, viewHi float64) float64 {
	switch {
	case lo < viewLo:
		return lo - viewLo
	case hi > viewHi:
		return min(hi-viewHi, lo-viewLo)
	}
	return 0
}

// ElementFromPoint returns the topmost attached node whose visible box
// contains p, or nil when p is outside the viewport.
func (d *Document) ElementFromPoint(p geometry.Point) *Node {
	if !d.Viewport().Contains(p) {
		return nil
	}
	hit := d.root
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, c := range n.children {
			rect, err := c.BoundingRect()
			if err != nil {
				continue
			}
			if rect.Contains(p) {
				hit = c
			}
			x, y := c.Overflow()
			if (x.Clips() || y.Clips()) && !rect.Contains(p) {
				continue
			}
			visit(c)
		}
	}
	visit(d.root)
	return hit
}

// HitTest is ElementFromPoint for callers holding the Element interface.
func (d *Document) HitTest(p geometry.Point) Element {
	if n := d.ElementFromPoint(p); n != nil {
		return n
	}
	return nil
}

// ActiveElement returns the focused node, or nil.
func (d *Document) ActiveElement() *Node {
	return d.focused
}

// Focus gives n input focus and scrolls it into view.
func (d *Document) Focus(el Element) {
	n, ok := el.(*Node)
	if !ok || n.doc != d || !n.Attached() {
		return
	}
	d.focused = n
	d.ScrollIntoView(n)
}

// Click activates n.
func (d *Document) Click(el Element) {
	if n, ok := el.(*Node); ok && n.doc == d && n.Attached() {
		n.clicks++
	}
}

// Blur removes input focus from n if it holds it.
func (d *Document) Blur(el Element) {
	if n, ok := el.(*Node); ok && d.focused == n {
		d.focused = nil
	}
}

// HasFocus reports whether el holds input focus.
func (d *Document) HasFocus(el Element) bool {
	n, ok := el.(*Node)
	return ok && n != nil && d.focused == n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
