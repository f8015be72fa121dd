package container

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"

	"snav/internal/dom"
	"snav/internal/geometry"
)

type fixture struct {
	doc     *dom.Document
	panel   *dom.Node // overflow auto, content taller than the box
	short   *dom.Node // overflow auto, content fits
	forced  *dom.Node // overflow-x scroll, content fits
	hidden  *dom.Node // overflow hidden, content taller
	wrapper *dom.Node // no overflow, inside panel
	leaf    *dom.Node // inside wrapper
}

func newFixture() fixture {
	doc := dom.NewDocument(80, 24)
	root := doc.Root()
	f := fixture{doc: doc}

	f.panel = doc.CreateElement("div", geometry.NewRect(0, 0, 40, 10), "id", "panel")
	f.panel.SetOverflow(dom.OverflowVisible, dom.OverflowAuto)
	doc.AppendChild(root, f.panel)
	f.wrapper = doc.CreateElement("div", geometry.NewRect(0, 0, 40, 30), "id", "wrapper")
	doc.AppendChild(f.panel, f.wrapper)
	f.leaf = doc.CreateElement("a", geometry.NewRect(0, 25, 10, 2), "id", "leaf")
	doc.AppendChild(f.wrapper, f.leaf)

	f.short = doc.CreateElement("div", geometry.NewRect(40, 0, 40, 10), "id", "short")
	f.short.SetOverflow(dom.OverflowAuto, dom.OverflowAuto)
	doc.AppendChild(root, f.short)
	doc.AppendChild(f.short, doc.CreateElement("a", geometry.NewRect(40, 0, 10, 2)))

	f.forced = doc.CreateElement("div", geometry.NewRect(0, 10, 40, 5), "id", "forced")
	f.forced.SetOverflow(dom.OverflowScroll, dom.OverflowVisible)
	doc.AppendChild(root, f.forced)

	f.hidden = doc.CreateElement("div", geometry.NewRect(40, 10, 40, 5), "id", "hidden")
	f.hidden.SetOverflow(dom.OverflowHidden, dom.OverflowHidden)
	doc.AppendChild(root, f.hidden)
	doc.AppendChild(f.hidden, doc.CreateElement("a", geometry.NewRect(40, 10, 10, 20)))
	return f
}

func TestIsScrollContainer(t *testing.T) {
	f := newFixture()
	m := New(f.doc.Root(), 0, logr.Discard())

	tests := map[string]struct {
		el   dom.Element
		want bool
	}{
		"document root":              {f.doc.Root(), true},
		"auto with overflowing body": {f.panel, true},
		"auto with fitting body":     {f.short, false},
		"explicit scroll":            {f.forced, true},
		"hidden never scrolls":       {f.hidden, false},
		"visible wrapper":            {f.wrapper, false},
		"nil":                        {nil, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsScrollContainer(tt.el))
		})
	}
}

func TestFor_StartsAtParent(t *testing.T) {
	f := newFixture()
	m := New(f.doc.Root(), 0, logr.Discard())

	assert.Equal(t, dom.Element(f.panel), m.For(f.leaf))
	assert.Equal(t, dom.Element(f.panel), m.For(f.wrapper))
	// A container's own container is the next one up.
	assert.Equal(t, dom.Element(f.doc.Root()), m.For(f.panel))
	assert.Equal(t, dom.Element(f.doc.Root()), m.For(f.doc.Root()))
	assert.Equal(t, dom.Element(f.doc.Root()), m.For(nil))
}

func TestFor_DepthBound(t *testing.T) {
	f := newFixture()
	var logged []string
	log := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})
	m := New(f.doc.Root(), 1, log)

	// leaf -> wrapper (depth 0, not a container) -> panel (depth 1, over the bound)
	assert.Equal(t, dom.Element(f.doc.Root()), m.For(f.leaf))
	assert.Len(t, logged, 1)
	assert.Equal(t, 1, m.MaxDepth())
}

func TestCanScroll(t *testing.T) {
	f := newFixture()
	m := New(f.doc.Root(), 0, logr.Discard())

	// panel: client height 10, content bottom 30.
	assert.False(t, m.CanScroll(f.panel, geometry.Up))
	assert.True(t, m.CanScroll(f.panel, geometry.Down))
	assert.False(t, m.CanScroll(f.panel, geometry.Left))
	assert.False(t, m.CanScroll(f.panel, geometry.Right))

	f.doc.ScrollTo(f.panel, 0, 19.5)
	assert.True(t, m.CanScroll(f.panel, geometry.Up))
	assert.False(t, m.CanScroll(f.panel, geometry.Down), "within one pixel of the end")

	f.doc.ScrollTo(f.panel, 0, 18.5)
	assert.True(t, m.CanScroll(f.panel, geometry.Down))
}

func TestCanScroll_NotAContainer(t *testing.T) {
	f := newFixture()
	var logged []string
	log := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})
	m := New(f.doc.Root(), 0, log)

	assert.False(t, m.CanScroll(f.wrapper, geometry.Down))
	assert.False(t, m.CanScroll(nil, geometry.Down))
	assert.False(t, m.CanScroll(f.panel, geometry.Direction(0)))

	assert.Len(t, logged, 3)
	assert.True(t, strings.Contains(logged[0], ErrNotContainer.Error()))
}
