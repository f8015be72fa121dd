package eventbus

import (
	"runtime/debug"

	"github.com/go-logr/logr"

	"snav/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventElementsAdded     = domain.EventElementsAdded
	EventElementsRemoved   = domain.EventElementsRemoved
	EventVisibilityChanged = domain.EventVisibilityChanged
	EventInterestMoved     = domain.EventInterestMoved
	EventActivated         = domain.EventActivated
	EventDismissed         = domain.EventDismissed
	EventScrolled          = domain.EventScrolled
	EventSeedCompleted     = domain.EventSeedCompleted
	EventError             = domain.EventError
)

// Re-export domain event types
type ElementsAddedEvent = domain.ElementsAddedEvent
type ElementsRemovedEvent = domain.ElementsRemovedEvent
type VisibilityChangedEvent = domain.VisibilityChangedEvent
type InterestMovedEvent = domain.InterestMovedEvent
type ActivatedEvent = domain.ActivatedEvent
type DismissedEvent = domain.DismissedEvent
type ScrolledEvent = domain.ScrolledEvent
type SeedCompletedEvent = domain.SeedCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus dispatches synchronously on the publishing goroutine.
//
// Events published from inside a handler are queued and delivered after the
// current event has reached every subscriber, so all subscribers observe
// events in publish order. The bus is not safe for concurrent use; it belongs
// to a single update loop.
type bus struct {
	log         logr.Logger
	handlers    map[EventType][]subscription
	nextID      uint64
	queue       []DomainEvent
	dispatching bool
}

// New creates a new event bus
func New(log logr.Logger) EventBus {
	return &bus{
		log:      log.WithName("eventbus"),
		handlers: make(map[EventType][]subscription),
	}
}

// Publish delivers event to every subscriber of its type before returning,
// unless it is called from a handler, in which case delivery happens once the
// outer event has been fully dispatched.
func (b *bus) Publish(event DomainEvent) {
	b.queue = append(b.queue, event)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.dispatch(next)
	}
	b.queue = nil
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) dispatch(event DomainEvent) {
	// Copy so handlers can unsubscribe while being called.
	subs := append([]subscription(nil), b.handlers[event.Type()]...)
	b.log.V(2).Info("dispatching event", "type", event.Type(), "subscribers", len(subs))

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(nil, "event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
