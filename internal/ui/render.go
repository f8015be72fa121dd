package ui

import (
	"snav/internal/dom"
)

// renderer paints a document onto a canvas.
type renderer struct {
	doc         *dom.Document
	ring        *Ring
	isNavigable func(dom.Element) bool
	visible     []dom.Element
	highlight   bool
}

func (r *renderer) paint() *canvas {
	view := toCells(r.doc.Viewport())
	c := newCanvas(view.x1, view.y1)
	r.paintChildren(c, r.doc.Root(), view, view)

	if r.highlight {
		for _, el := range r.visible {
			if rect, err := el.BoundingRect(); err == nil {
				c.frame(toCells(rect), dottedFrame, paintHighlight, view)
			}
		}
	}
	if rect, ok := r.ring.Rect(); ok {
		c.frame(toCells(rect), heavyFrame, paintRing, view)
	}
	return c
}

func (r *renderer) paintChildren(c *canvas, n *dom.Node, clip, view cellRect) {
	for _, child := range n.ChildNodes() {
		rect, err := child.BoundingRect()
		if err != nil {
			continue
		}
		box := toCells(rect)

		own := clip
		if child.Fixed() {
			own = view
		}
		r.paintNode(c, child, box, own)

		inner := own
		x, y := child.Overflow()
		if x.Clips() {
			inner.x0, inner.x1 = max(inner.x0, box.x0), min(inner.x1, box.x1)
		}
		if y.Clips() {
			inner.y0, inner.y1 = max(inner.y0, box.y0), min(inner.y1, box.y1)
		}
		r.paintChildren(c, child, inner, view)
	}
}

func (r *renderer) paintNode(c *canvas, n *dom.Node, box, clip cellRect) {
	if box.intersect(clip).empty() {
		return
	}

	textPaint := paintText
	switch {
	case r.doc.HasFocus(n):
		textPaint = paintFocused
	case r.isNavigable != nil && r.isNavigable(n):
		textPaint = paintNavigable
	}

	x, y := n.Overflow()
	scroller := x.Clips() || y.Clips()
	framed := box.x1-box.x0 >= 3 && box.y1-box.y0 >= 3

	if !framed {
		if textPaint != paintText {
			c.fill(box, textPaint, clip)
		}
		c.text(box.x0, box.y0, n.Text(), box.x1, textPaint, clip)
		return
	}

	if textPaint != paintText {
		c.fill(cellRect{box.x0 + 1, box.y0 + 1, box.x1 - 1, box.y1 - 1}, textPaint, clip)
	}
	switch {
	case scroller:
		c.frame(box, roundFrame, paintScroller, clip)
		r.scrollMarks(c, n, box, clip)
	default:
		c.frame(box, lightFrame, paintBorder, clip)
	}
	c.text(box.x0+1, box.y0+1, n.Text(), box.x1-1, textPaint, clip)
}

// scrollMarks flags content hidden above, below, left or right of a scroller
// on its border.
func (r *renderer) scrollMarks(c *canvas, n *dom.Node, box, clip cellRect) {
	m := n.ScrollMetrics()
	maxLeft, maxTop := m.MaxScroll()
	midX, midY := (box.x0+box.x1)/2, (box.y0+box.y1)/2
	if m.ScrollTop > 0 {
		c.set(midX, box.y0, '▲', paintScroller, clip)
	}
	if m.ScrollTop < maxTop {
		c.set(midX, box.y1-1, '▼', paintScroller, clip)
	}
	if m.ScrollLeft > 0 {
		c.set(box.x0, midY, '◀', paintScroller, clip)
	}
	if m.ScrollLeft < maxLeft {
		c.set(box.x1-1, midY, '▶', paintScroller, clip)
	}
}
