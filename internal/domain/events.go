package domain

import (
	"snav/internal/dom"
	"snav/internal/geometry"
)

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventElementsAdded     EventType = "ElementsAdded"
	EventElementsRemoved   EventType = "ElementsRemoved"
	EventVisibilityChanged EventType = "VisibilityChanged"
	EventInterestMoved     EventType = "InterestMoved"
	EventActivated         EventType = "Activated"
	EventDismissed         EventType = "Dismissed"
	EventScrolled          EventType = "Scrolled"
	EventSeedCompleted     EventType = "SeedCompleted"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ElementsAddedEvent is emitted when subtrees are attached to the document.
// Roots holds the subtree roots only.
type ElementsAddedEvent struct {
	Roots []dom.Element
}

func (e ElementsAddedEvent) Type() EventType { return EventElementsAdded }

// ElementsRemovedEvent is emitted when subtrees are detached from the document
type ElementsRemovedEvent struct {
	Roots []dom.Element
}

func (e ElementsRemovedEvent) Type() EventType { return EventElementsRemoved }

// VisibilityChangedEvent is emitted when a tracked element enters or leaves the viewport
type VisibilityChangedEvent struct {
	Element dom.Element
	Visible bool
	Ratio   float64
}

func (e VisibilityChangedEvent) Type() EventType { return EventVisibilityChanged }

// InterestMovedEvent is emitted whenever the interest state is written, including
// forced clears. From and To may be nil.
type InterestMovedEvent struct {
	From dom.Element
	To   dom.Element
}

func (e InterestMovedEvent) Type() EventType { return EventInterestMoved }

// ActivatedEvent is emitted after the interested element is focused and clicked
type ActivatedEvent struct {
	Element dom.Element
}

func (e ActivatedEvent) Type() EventType { return EventActivated }

// DismissedEvent is emitted after the interested element loses focus
type DismissedEvent struct {
	Element dom.Element
}

func (e DismissedEvent) Type() EventType { return EventDismissed }

// ScrolledEvent is emitted when the host scrolls a container natively
type ScrolledEvent struct {
	Container dom.Element
	Direction geometry.Direction
}

func (e ScrolledEvent) Type() EventType { return EventScrolled }

// SeedCompletedEvent is emitted when the initial document scan finishes
type SeedCompletedEvent struct {
	Visited   int
	Navigable int
}

func (e SeedCompletedEvent) Type() EventType { return EventSeedCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
