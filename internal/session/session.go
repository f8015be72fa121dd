// Package session wires the navigation components for one document.
package session

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"snav/internal/config"
	"snav/internal/container"
	"snav/internal/discovery"
	"snav/internal/dom"
	"snav/internal/eligibility"
	"snav/internal/eventbus"
	"snav/internal/geometry"
	"snav/internal/input"
	"snav/internal/interest"
	"snav/internal/navigation"
	"snav/internal/registry"
	"snav/internal/visibility"
)

// Options carries the collaborators a host supplies.
type Options struct {
	Log  logr.Logger
	Ring interest.Ring
}

// Session owns the registry, engine, interest state and feeds for a document.
// It is not safe for concurrent use; hosts drive it from one goroutine.
type Session struct {
	doc        *dom.Document
	cfg        *config.Config
	bus        eventbus.EventBus
	containers *container.Model
	registry   *registry.Registry
	observer   *visibility.Observer
	interest   *interest.State
	engine     *navigation.Engine
	handler    *input.Handler
	log        logr.Logger

	seeded   eventbus.SeedCompletedEvent
	teardown []func()
	closed   bool
}

// New builds a session over doc, seeds the registry from the existing tree and
// takes the first visibility measurement. A nil cfg uses the defaults.
func New(ctx context.Context, doc *dom.Document, cfg *config.Config, opts Options) (*Session, error) {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Session{
		doc: doc,
		cfg: cfg,
		bus: eventbus.New(log),
		log: log.WithName("session"),
	}

	s.containers = container.New(doc.Root(), cfg.Navigation.MaxDepth, log)
	isNavigable, err := eligibility.New(cfg.Eligibility.Selector, s.containers)
	if err != nil {
		return nil, err
	}

	s.observer = visibility.New(doc, doc, s.bus, visibility.Options{
		Threshold:      cfg.Visibility.Threshold,
		TestVisibility: cfg.Visibility.TestVisibility,
	}, log)
	s.interest = interest.New(doc, opts.Ring, s.bus, log)
	s.registry = registry.New(isNavigable, s.observer, s.interest, log)
	s.engine = navigation.New(s.containers, s.registry, s.interest, log)
	s.handler = input.New(input.NewKeyMap(cfg.Keys), s.engine, s.interest, log)

	s.teardown = append(s.teardown,
		s.registry.Attach(s.bus),
		s.bus.Subscribe(eventbus.EventSeedCompleted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SeedCompletedEvent); ok {
				s.seeded = event
			}
		}),
		doc.Observe(dom.MutationFuncs{
			Added: func(roots []dom.Element) {
				s.bus.Publish(eventbus.ElementsAddedEvent{Roots: roots})
			},
			Removed: func(roots []dom.Element) {
				s.bus.Publish(eventbus.ElementsRemovedEvent{Roots: roots})
			},
		}),
	)

	seeder := discovery.NewDiscoveryService(s.registry, s.bus, cfg.Navigation.MaxDepth, log)
	if _, err := seeder.Seed(ctx, doc.Root()); err != nil {
		s.Close()
		return nil, err
	}
	visible := s.observer.Refresh()
	s.log.Info("session started", "visited", s.seeded.Visited, "navigable", s.seeded.Navigable, "visibilityChanges", visible)
	return s, nil
}

func (s *Session) Document() *dom.Document { return s.doc }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Bus() eventbus.EventBus { return s.bus }
func (s *Session) Registry() *registry.Registry { return s.registry }
func (s *Session) Observer() *visibility.Observer { return s.observer }
func (s *Session) Interest() *interest.State { return s.interest }
func (s *Session) Engine() *navigation.Engine { return s.engine }
func (s *Session) Handler() *input.Handler { return s.handler }
func (s *Session) Containers() *container.Model { return s.containers }
func (s *Session) Current() dom.Element { return s.interest.Current() }
func (s *Session) Advance(d geometry.Direction) bool { return s.engine.Advance(d) }

// Seeded reports what the initial scan found.
func (s *Session) Seeded() eventbus.SeedCompletedEvent { return s.seeded }

// Refresh re-measures every tracked element and delivers visibility changes.
// Hosts call it after layout or scroll has settled.
func (s *Session) Refresh() int {
	if s.closed {
		return 0
	}
	return s.observer.Refresh()
}

// HandleKey dispatches a key press. See input.Handler.HandleKey.
func (s *Session) HandleKey(name string) bool {
	return s.Press(name).Handled
}

// Close detaches the session from its document and event sources. Interest is
// cleared. Close is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
	s.teardown = nil
	if s.interest.Current() != nil {
		s.interest.Clear()
	}
	s.log.V(1).Info("session closed")
}
