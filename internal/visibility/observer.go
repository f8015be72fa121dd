// Package visibility reports when tracked elements enter or leave the
// viewport, the way an intersection observer with a single threshold does.
package visibility

import (
	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eventbus"
	"snav/internal/geometry"
)

// DefaultThreshold is the fraction of an element's box that must be on screen.
const DefaultThreshold = 0.01

// maxAncestors bounds the clip walk.
const maxAncestors = 1024

// HitTester finds the topmost element at a viewport point.
type HitTester interface {
	HitTest(p geometry.Point) dom.Element
}

// Options configures an Observer.
type Options struct {
	// Threshold is the minimum visible fraction, in (0, 1].
	Threshold float64
	// TestVisibility additionally requires the element to be the topmost one
	// at the centre of its visible part.
	TestVisibility bool
}

type state int

const (
	stateUnknown state = iota
	stateVisible
	stateHidden
)

type entry struct {
	el    dom.Element
	state state
	ratio float64
}

// Observer measures tracked elements on Refresh and publishes a
// VisibilityChangedEvent for each element seen for the first time or whose
// visibility flipped.
type Observer struct {
	viewport dom.Viewport
	hits     HitTester
	bus      eventbus.EventBus
	opts     Options
	log      logr.Logger

	tracked []*entry
	index   map[dom.Element]*entry
}

// New creates an Observer. hits is only consulted when opts.TestVisibility is
// set and may be nil otherwise.
func New(viewport dom.Viewport, hits HitTester, bus eventbus.EventBus, opts Options, log logr.Logger) *Observer {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		opts.Threshold = DefaultThreshold
	}
	return &Observer{
		viewport: viewport,
		hits:     hits,
		bus:      bus,
		opts:     opts,
		log:      log.WithName("visibility"),
		index:    make(map[dom.Element]*entry),
	}
}

// Observe starts tracking el. Its first measurement is published on the next
// Refresh.
func (o *Observer) Observe(el dom.Element) {
	if el == nil {
		return
	}
	if _, ok := o.index[el]; ok {
		return
	}
	e := &entry{el: el}
	o.tracked = append(o.tracked, e)
	o.index[el] = e
}

// Unobserve stops tracking el.
func (o *Observer) Unobserve(el dom.Element) {
	e, ok := o.index[el]
	if !ok {
		return
	}
	delete(o.index, el)
	for i, t := range o.tracked {
		if t == e {
			o.tracked = append(o.tracked[:i], o.tracked[i+1:]...)
			break
		}
	}
}

// Tracked returns the number of tracked elements.
func (o *Observer) Tracked() int {
	return len(o.tracked)
}

// Ratio returns the last measured visible fraction of el.
func (o *Observer) Ratio(el dom.Element) (float64, bool) {
	e, ok := o.index[el]
	if !ok || e.state == stateUnknown {
		return 0, false
	}
	return e.ratio, true
}

// Refresh re-measures every tracked element and publishes changes. It returns
// the number of events published.
func (o *Observer) Refresh() int {
	snapshot := append([]*entry(nil), o.tracked...)
	changed := 0
	for _, e := range snapshot {
		ratio, visible := o.Measure(e.el)
		e.ratio = ratio

		next := stateHidden
		if visible {
			next = stateVisible
		}
		if next == e.state {
			continue
		}
		e.state = next
		changed++
		o.bus.Publish(eventbus.VisibilityChangedEvent{Element: e.el, Visible: visible, Ratio: ratio})
	}
	if changed > 0 {
		o.log.V(1).Info("visibility refreshed", "tracked", len(snapshot), "changed", changed)
	}
	return changed
}

// Measure returns the visible fraction of el and whether that counts as
// visible. Detached and zero-area elements are never visible.
func (o *Observer) Measure(el dom.Element) (float64, bool) {
	rect, err := el.BoundingRect()
	if err != nil || rect.IsEmpty() {
		return 0, false
	}

	shown := rect.Intersect(o.clipFor(el))
	ratio := shown.Area() / rect.Area()
	if ratio <= 0 || ratio < o.opts.Threshold {
		return ratio, false
	}

	if o.opts.TestVisibility && o.hits != nil {
		hit := o.hits.HitTest(shown.Center())
		if hit == nil || !contains(el, hit) {
			return ratio, false
		}
	}
	return ratio, true
}

// clipFor intersects the viewport with the box of every ancestor that clips
// overflow, axis by axis. Ancestors of a fixed box do not clip it.
func (o *Observer) clipFor(el dom.Element) geometry.Rect {
	clip := o.viewport.Viewport()
	cur := el
	for depth := 0; depth < maxAncestors; depth++ {
		if isFixed(cur) {
			break
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		cur = parent

		ox, oy := cur.Overflow()
		if !ox.Clips() && !oy.Clips() {
			continue
		}
		box, err := cur.BoundingRect()
		if err != nil {
			break
		}
		if ox.Clips() {
			clip = clipX(clip, box)
		}
		if oy.Clips() {
			clip = clipY(clip, box)
		}
	}
	return clip
}

func clipX(r, box geometry.Rect) geometry.Rect {
	left := max(r.Left(), box.Left())
	right := min(r.Right(), box.Right())
	return geometry.NewRect(left, r.Y, max(0, right-left), r.Height)
}

func clipY(r, box geometry.Rect) geometry.Rect {
	top := max(r.Top(), box.Top())
	bottom := min(r.Bottom(), box.Bottom())
	return geometry.NewRect(r.X, top, r.Width, max(0, bottom-top))
}

func isFixed(el dom.Element) bool {
	f, ok := el.(interface{ Fixed() bool })
	return ok && f.Fixed()
}

// contains reports whether hit is el or one of its descendants.
func contains(el, hit dom.Element) bool {
	for cur, depth := hit, 0; cur != nil && depth < maxAncestors; cur, depth = cur.Parent(), depth+1 {
		if cur == el {
			return true
		}
	}
	return false
}
