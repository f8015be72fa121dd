package discovery

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eventbus"
)

// Sink receives every element found by a scan.
type Sink interface {
	OnElementAdded(el dom.Element)
	Len() (navigable, visible int)
}

// DiscoveryService seeds the candidate registry from an existing document
type DiscoveryService interface {
	Seed(ctx context.Context, root dom.Element) (int, error)
}

// discoveryService is the concrete implementation
type discoveryService struct {
	sink     Sink
	bus      eventbus.EventBus
	maxDepth int
	log      logr.Logger
}

// NewDiscoveryService creates a new discovery service. Elements deeper than
// maxDepth below the root are not visited; zero means no limit.
func NewDiscoveryService(sink Sink, bus eventbus.EventBus, maxDepth int, log logr.Logger) DiscoveryService {
	return &discoveryService{
		sink:     sink,
		bus:      bus,
		maxDepth: maxDepth,
		log:      log.WithName("discovery"),
	}
}

// Seed walks the tree under root in document order, offering every element
// to the sink, and returns the size of the navigable set afterwards. The root
// itself is not offered. A cancelled context stops the walk early.
func (ds *discoveryService) Seed(ctx context.Context, root dom.Element) (int, error) {
	if root == nil {
		return 0, fmt.Errorf("seed: nil root")
	}

	visited := 0
	var walk func(el dom.Element, depth int) error
	walk = func(el dom.Element, depth int) error {
		for _, child := range el.Children() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if ds.maxDepth > 0 && depth >= ds.maxDepth {
				ds.log.Info("seed depth bound reached, skipping subtree", "element", el.ID(), "maxDepth", ds.maxDepth)
				return nil
			}
			ds.sink.OnElementAdded(child)
			visited++
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	err := walk(root, 0)
	navigable, _ := ds.sink.Len()
	if err != nil {
		ds.log.Error(err, "seed interrupted", "visited", visited)
		if ds.bus != nil {
			ds.bus.Publish(eventbus.ErrorEvent{Message: "Document scan interrupted", Err: err})
		}
		return navigable, fmt.Errorf("seed interrupted after %d elements: %w", visited, err)
	}

	ds.log.V(1).Info("seed complete", "visited", visited, "navigable", navigable)
	if ds.bus != nil {
		ds.bus.Publish(eventbus.SeedCompletedEvent{Visited: visited, Navigable: navigable})
	}
	return navigable, nil
}
