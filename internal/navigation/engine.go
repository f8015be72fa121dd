// Package navigation picks the element that should receive interest next
// when an arrow key is pressed.
//
// A search looks for the visible candidate nearest to the interested element
// in the pressed direction, but only among candidates that share the current
// search container. When the container has nothing to offer it may still
// scroll, in which case the search gives up so the host can scroll natively;
// otherwise the search climbs to the enclosing container and repeats, ending
// at the document root.
package navigation

import (
	"errors"

	"github.com/go-logr/logr"

	"snav/internal/container"
	"snav/internal/dom"
	"snav/internal/geometry"
)

// Outcome describes how a search ended.
type Outcome int

const (
	// NotFound means no container up to the root had a candidate or scroll room.
	NotFound Outcome = iota
	// Found means Result.Element is the new target.
	Found
	// ScrollFallback means Result.Container can still scroll in the direction
	// and should be scrolled natively instead of moving interest.
	ScrollFallback
	// InvalidDirection means the direction was not one of the four arrows.
	InvalidDirection
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case ScrollFallback:
		return "scroll"
	case InvalidDirection:
		return "invalid-direction"
	default:
		return "not-found"
	}
}

// Result is the outcome of a FindClosest call.
type Result struct {
	Outcome   Outcome
	Element   dom.Element
	Container dom.Element
}

// Candidates is the registry view the engine searches.
type Candidates interface {
	Visible() []dom.Element
	Prune(el dom.Element)
}

// Interest is the interest state the engine reads and moves.
type Interest interface {
	Current() dom.Element
	MoveTo(el dom.Element)
}

// Engine runs directional searches. It never returns errors; problems are
// logged and the search degrades to NotFound.
type Engine struct {
	containers *container.Model
	candidates Candidates
	interest   Interest
	log        logr.Logger

	last Result
}

// New creates an Engine.
func New(containers *container.Model, candidates Candidates, interest Interest, log logr.Logger) *Engine {
	return &Engine{
		containers: containers,
		candidates: candidates,
		interest:   interest,
		log:        log.WithName("navigation"),
	}
}

// LastResult returns the result of the most recent FindClosest call.
func (e *Engine) LastResult() Result {
	return e.last
}

// Advance moves interest to the closest candidate in dir. It reports whether
// interest moved; when it did not, the caller should apply its default
// behaviour for the key, such as scrolling.
func (e *Engine) Advance(dir geometry.Direction) bool {
	res := e.FindClosest(dir)
	if res.Outcome != Found {
		return false
	}
	e.interest.MoveTo(res.Element)
	return true
}

type candidate struct {
	el        dom.Element
	rect      geometry.Rect
	container dom.Element
	resolved  bool
}

// FindClosest searches for the next target in dir without changing interest.
func (e *Engine) FindClosest(dir geometry.Direction) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error(errors.New("navigation search panicked"), "search aborted", "direction", dir.String(), "panic", r)
			res = Result{Outcome: NotFound}
		}
		e.last = res
	}()

	if !dir.Valid() {
		e.log.Info("ignoring invalid direction", "direction", int(dir))
		return Result{Outcome: InvalidDirection}
	}

	origin := e.interest.Current()
	searchIn := e.containers.For(origin)
	if origin != nil && e.containers.IsScrollContainer(origin) {
		searchIn = origin
	}

	point := geometry.TestingPoint(dir, e.originRect(origin))
	candidates, stale := e.measure(origin)
	defer func() {
		for _, el := range stale {
			e.log.V(1).Info("pruning stale candidate", "element", el.ID())
			e.candidates.Prune(el)
		}
	}()

	for depth := 0; ; depth++ {
		if depth > e.containers.MaxDepth() {
			e.log.Info("container climb exceeded depth bound", "direction", dir.String(), "maxDepth", e.containers.MaxDepth())
			return Result{Outcome: NotFound}
		}

		if best := e.closestIn(searchIn, dir, point, candidates); best != nil {
			e.log.V(1).Info("target found", "direction", dir.String(), "element", best.ID(), "container", searchIn.ID())
			return Result{Outcome: Found, Element: best, Container: searchIn}
		}
		if e.containers.CanScroll(searchIn, dir) {
			e.log.V(1).Info("container can scroll, deferring", "direction", dir.String(), "container", searchIn.ID())
			return Result{Outcome: ScrollFallback, Container: searchIn}
		}
		if e.containers.IsRoot(searchIn) {
			e.log.V(1).Info("no target", "direction", dir.String())
			return Result{Outcome: NotFound, Container: searchIn}
		}
		searchIn = e.containers.For(searchIn)
	}
}

// originRect is the interested element's box, or the whole viewport when
// there is no interest or its geometry cannot be read.
func (e *Engine) originRect(origin dom.Element) geometry.Rect {
	if origin != nil {
		if rect, err := origin.BoundingRect(); err == nil {
			return rect
		}
		e.log.V(1).Info("interested element has no geometry, searching from viewport", "element", origin.ID())
	}
	viewport, _ := e.containers.Root().BoundingRect()
	return viewport
}

// measure reads the geometry of every visible candidate once per search.
// Candidates whose geometry query fails are returned separately.
func (e *Engine) measure(origin dom.Element) ([]*candidate, []dom.Element) {
	visible := e.candidates.Visible()
	out := make([]*candidate, 0, len(visible))
	var stale []dom.Element
	for _, el := range visible {
		if el == origin {
			continue
		}
		rect, err := el.BoundingRect()
		if err != nil {
			if errors.Is(err, dom.ErrDetached) {
				stale = append(stale, el)
			}
			continue
		}
		out = append(out, &candidate{el: el, rect: rect})
	}
	return out, stale
}

// closestIn returns the candidate in searchIn that lies strictly beyond point
// in dir and whose own testing point is nearest to it. Ties keep the earliest
// candidate in document order.
func (e *Engine) closestIn(searchIn dom.Element, dir geometry.Direction, point geometry.Point, candidates []*candidate) dom.Element {
	var best dom.Element
	bestDist := 0.0
	for _, c := range candidates {
		if !geometry.Beyond(dir, point, c.rect) {
			continue
		}
		if !c.resolved {
			c.container = e.containers.For(c.el)
			c.resolved = true
		}
		if c.container != searchIn {
			continue
		}
		d := geometry.DistanceSquared(point, geometry.TestingPoint(dir, c.rect))
		if best == nil || d < bestDist {
			best, bestDist = c.el, d
		}
	}
	return best
}
