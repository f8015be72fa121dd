package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snav/internal/dom"
	"snav/internal/geometry"
)

func lines(c *canvas) []string {
	return strings.Split(c.String(), "\n")
}

func TestRender_BoxesTextAndRing(t *testing.T) {
	doc := dom.NewDocument(20, 4)
	button := doc.CreateElement("button", geometry.NewRect(2, 1, 6, 3), "id", "ok")
	button.SetText("OK")
	link := doc.CreateElement("a", geometry.NewRect(10, 1, 5, 1), "id", "go")
	link.SetText("Go")
	doc.AppendChild(doc.Root(), button)
	doc.AppendChild(doc.Root(), link)

	ring := NewRing()
	r := renderer{doc: doc, ring: ring}

	assert.Equal(t, []string{
		"",
		"  ┌────┐  Go",
		"  │OK  │",
		"  └────┘",
	}, lines(r.paint()))

	ring.Refresh(link)
	assert.Equal(t, []string{
		"         ┏━━━━━┓",
		"  ┌────┐ ┃Go   ┃",
		"  │OK  │ ┗━━━━━┛",
		"  └────┘",
	}, lines(r.paint()))
}

func TestRender_ClipsScrollerContent(t *testing.T) {
	doc := dom.NewDocument(20, 8)
	list := doc.CreateElement("div", geometry.NewRect(0, 0, 10, 3), "id", "list")
	list.SetOverflow(dom.OverflowAuto, dom.OverflowAuto)
	doc.AppendChild(doc.Root(), list)

	inside := doc.CreateElement("div", geometry.NewRect(1, 1, 8, 1))
	inside.SetText("inside")
	hidden := doc.CreateElement("div", geometry.NewRect(1, 5, 8, 1))
	hidden.SetText("hidden")
	doc.AppendChild(list, inside)
	doc.AppendChild(list, hidden)

	r := renderer{doc: doc, ring: NewRing()}
	out := lines(r.paint())
	require.Len(t, out, 8)
	assert.Equal(t, "╭────────╮", out[0])
	assert.Equal(t, "│inside  │", out[1])
	assert.Equal(t, "╰────▼───╯", out[2])
	assert.NotContains(t, strings.Join(out, "\n"), "hidden")

	// Scrolled to the end the content shows and the marks flip.
	doc.ScrollTo(list, 0, 3)
	out = lines(r.paint())
	assert.Equal(t, "╭────▲───╮", out[0])
	assert.Contains(t, out[2], "hidden")
	assert.NotContains(t, out[1], "inside")
}

func TestRender_FixedIgnoresPageScroll(t *testing.T) {
	doc := dom.NewDocument(10, 3)
	bar := doc.CreateElement("nav", geometry.NewRect(0, 0, 10, 1))
	bar.SetFixed(true)
	bar.SetText("menu")
	body := doc.CreateElement("p", geometry.NewRect(0, 1, 10, 1))
	body.SetText("first")
	doc.AppendChild(doc.Root(), bar)
	doc.AppendChild(doc.Root(), body)
	doc.AppendChild(doc.Root(), doc.CreateElement("div", geometry.NewRect(0, 10, 10, 1)))

	doc.ScrollTo(doc.Root(), 0, 2)
	r := renderer{doc: doc, ring: NewRing()}
	out := lines(r.paint())
	assert.Equal(t, "menu", out[0])
	assert.NotContains(t, strings.Join(out, "\n"), "first")
}

func TestRing_Rect(t *testing.T) {
	doc := dom.NewDocument(20, 20)
	el := doc.CreateElement("a", geometry.NewRect(5, 5, 4, 2))
	doc.AppendChild(doc.Root(), el)

	ring := NewRing()
	_, ok := ring.Rect()
	assert.False(t, ok)

	ring.Refresh(el)
	rect, ok := ring.Rect()
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(4, 4, 6, 4), rect)

	require.NoError(t, doc.RemoveChild(doc.Root(), el))
	_, ok = ring.Rect()
	assert.False(t, ok)
}

func TestCanvas_WideRunes(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(0, 0, "日本語", 5, paintText, c.bounds())
	assert.Equal(t, "日本", c.String())
}
