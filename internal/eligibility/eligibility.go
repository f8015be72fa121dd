// Package eligibility decides which elements may receive interest.
package eligibility

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"snav/internal/dom"
)

// DefaultSelector matches links, native controls and elements opted in by
// class or attribute.
const DefaultSelector = `a, button, video, input:not([type=hidden]), select, textarea, .navigable, [data-navigable], [role=button]`

// Predicate reports whether an element is navigable.
type Predicate func(el dom.Element) bool

// Sourced is implemented by elements backed by an html node.
type Sourced interface {
	Source() *html.Node
}

// ContainerChecker is the part of the container model eligibility needs.
type ContainerChecker interface {
	IsScrollContainer(el dom.Element) bool
	IsRoot(el dom.Element) bool
}

// New compiles selector and returns a predicate that accepts elements it
// matches as well as every scroll container other than the document root.
// An empty selector uses DefaultSelector.
func New(selector string, containers ContainerChecker) (Predicate, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid eligibility selector %q: %w", selector, err)
	}

	return func(el dom.Element) bool {
		if el == nil || containers.IsRoot(el) {
			return false
		}
		if s, ok := el.(Sourced); ok {
			if n := s.Source(); n != nil && n.Type == html.ElementNode && group.Match(n) {
				return true
			}
		}
		return containers.IsScrollContainer(el)
	}, nil
}
