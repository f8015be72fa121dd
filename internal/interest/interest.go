// Package interest holds the single element that currently has interest and
// performs the focus, activation and dismissal requests that go with it.
package interest

import (
	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eventbus"
	"snav/internal/geometry"
)

// Ring draws the interest indicator. Refresh(nil) hides it.
type Ring interface {
	Refresh(el dom.Element)
}

// RingOutset is how far the ring's outer edge sits from the element's box for
// a given margin and border width.
func RingOutset(margin, border float64) float64 {
	return margin/2 + border
}

// RingRect returns the outer box of the ring drawn around rect.
func RingRect(rect geometry.Rect, margin, border float64) geometry.Rect {
	return rect.Outset(RingOutset(margin, border))
}

// State is the interest state. The zero value is not usable; use New.
type State struct {
	current dom.Element
	surface dom.FocusSurface
	ring    Ring
	bus     eventbus.EventBus
	log     logr.Logger
}

// New creates an empty State. ring and bus may be nil.
func New(surface dom.FocusSurface, ring Ring, bus eventbus.EventBus, log logr.Logger) *State {
	return &State{
		surface: surface,
		ring:    ring,
		bus:     bus,
		log:     log.WithName("interest"),
	}
}

// SetRing replaces the ring and redraws it for the current element.
func (s *State) SetRing(ring Ring) {
	s.ring = ring
	if ring != nil {
		ring.Refresh(s.current)
	}
}

// Current returns the interested element, or nil.
func (s *State) Current() dom.Element {
	return s.current
}

// MoveTo gives el interest and focus. A nil el clears interest. The ring is
// refreshed either way.
func (s *State) MoveTo(el dom.Element) {
	from := s.current
	s.current = el
	if el != nil {
		s.surface.Focus(el)
	}
	if s.ring != nil {
		s.ring.Refresh(el)
	}

	s.log.V(1).Info("interest moved", "from", idOf(from), "to", idOf(el))
	s.publish(eventbus.InterestMovedEvent{From: from, To: el})
}

// Clear drops interest without touching focus.
func (s *State) Clear() {
	s.MoveTo(nil)
}

// Activate focuses and clicks the interested element. It reports whether
// there was one.
func (s *State) Activate() bool {
	el := s.current
	if el == nil {
		return false
	}
	s.surface.Focus(el)
	s.surface.Click(el)
	s.publish(eventbus.ActivatedEvent{Element: el})
	return true
}

// Dismiss blurs the interested element if it holds focus. Interest itself is
// kept. It reports whether anything was blurred.
func (s *State) Dismiss() bool {
	el := s.current
	if el == nil || !s.surface.HasFocus(el) {
		return false
	}
	s.surface.Blur(el)
	s.publish(eventbus.DismissedEvent{Element: el})
	return true
}

func (s *State) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func idOf(el dom.Element) string {
	if el == nil {
		return "<none>"
	}
	return el.ID()
}
