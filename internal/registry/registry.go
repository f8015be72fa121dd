// Package registry keeps the set of navigable elements and the subset that is
// currently visible, updated incrementally from mutation and visibility
// notifications.
package registry

import (
	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eligibility"
	"snav/internal/eventbus"
)

// Tracker starts and stops visibility tracking for an element.
type Tracker interface {
	Observe(el dom.Element)
	Unobserve(el dom.Element)
}

// InterestHolder is the part of the interest state the registry clears when
// the interested element stops being a candidate.
type InterestHolder interface {
	Current() dom.Element
	Clear()
}

// Registry holds the navigable set and the visible set. The visible set is
// always a subset of the navigable set.
type Registry struct {
	isNavigable eligibility.Predicate
	tracker     Tracker
	interest    InterestHolder
	log         logr.Logger

	navigable map[dom.Element]struct{}
	visible   map[dom.Element]struct{}
}

// New creates an empty registry. tracker and interest may be nil.
func New(isNavigable eligibility.Predicate, tracker Tracker, interest InterestHolder, log logr.Logger) *Registry {
	return &Registry{
		isNavigable: isNavigable,
		tracker:     tracker,
		interest:    interest,
		log:         log.WithName("registry"),
		navigable:   make(map[dom.Element]struct{}),
		visible:     make(map[dom.Element]struct{}),
	}
}

// OnElementAdded inserts el into the navigable set and starts tracking its
// visibility if it is eligible. Adding a known element changes nothing.
func (r *Registry) OnElementAdded(el dom.Element) {
	if el == nil || !r.isNavigable(el) {
		return
	}
	if _, ok := r.navigable[el]; ok {
		return
	}
	r.navigable[el] = struct{}{}
	if r.tracker != nil {
		r.tracker.Observe(el)
	}
	r.log.V(1).Info("navigable added", "element", el.ID())
}

// OnElementRemoved drops el from both sets and stops tracking it. If el held
// interest, interest is cleared. Removing an unknown element changes nothing.
func (r *Registry) OnElementRemoved(el dom.Element) {
	if _, ok := r.navigable[el]; !ok {
		return
	}
	delete(r.navigable, el)
	delete(r.visible, el)
	if r.tracker != nil {
		r.tracker.Unobserve(el)
	}
	r.log.V(1).Info("navigable removed", "element", el.ID())
	r.clearInterestIf(el)
}

// OnVisibilityChanged updates the visible set. Reports for elements outside
// the navigable set are ignored.
func (r *Registry) OnVisibilityChanged(el dom.Element, visible bool) {
	if _, ok := r.navigable[el]; !ok {
		r.log.V(1).Info("visibility report for unknown element ignored", "element", idOf(el))
		return
	}
	if visible {
		r.visible[el] = struct{}{}
		return
	}
	delete(r.visible, el)
	r.clearInterestIf(el)
}

// Prune removes an element whose geometry can no longer be queried.
func (r *Registry) Prune(el dom.Element) {
	r.OnElementRemoved(el)
}

func (r *Registry) clearInterestIf(el dom.Element) {
	if r.interest != nil && r.interest.Current() == el {
		r.interest.Clear()
	}
}

// IsNavigable reports membership in the navigable set.
func (r *Registry) IsNavigable(el dom.Element) bool {
	_, ok := r.navigable[el]
	return ok
}

// IsVisible reports membership in the visible set.
func (r *Registry) IsVisible(el dom.Element) bool {
	_, ok := r.visible[el]
	return ok
}

// Len returns the sizes of the navigable and visible sets.
func (r *Registry) Len() (navigable, visible int) {
	return len(r.navigable), len(r.visible)
}

// Navigable returns the navigable set in document order.
func (r *Registry) Navigable() []dom.Element {
	return sorted(r.navigable)
}

// Visible returns the visible set in document order.
func (r *Registry) Visible() []dom.Element {
	return sorted(r.visible)
}

func sorted(set map[dom.Element]struct{}) []dom.Element {
	out := make([]dom.Element, 0, len(set))
	for el := range set {
		out = append(out, el)
	}
	dom.SortByDocumentOrder(out)
	return out
}

// Attach subscribes the registry to mutation and visibility events. Mutation
// events carry subtree roots; every element under each root is visited.
// The returned func unsubscribes.
func (r *Registry) Attach(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventElementsAdded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ElementsAddedEvent); ok {
				for _, root := range event.Roots {
					dom.Walk(root, func(el dom.Element) bool {
						r.OnElementAdded(el)
						return true
					})
				}
			}
		}),
		bus.Subscribe(eventbus.EventElementsRemoved, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ElementsRemovedEvent); ok {
				for _, root := range event.Roots {
					dom.Walk(root, func(el dom.Element) bool {
						r.OnElementRemoved(el)
						return true
					})
				}
			}
		}),
		bus.Subscribe(eventbus.EventVisibilityChanged, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.VisibilityChangedEvent); ok {
				r.OnVisibilityChanged(event.Element, event.Visible)
			}
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func idOf(el dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	return el.ID()
}
