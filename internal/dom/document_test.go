package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snav/internal/geometry"
)

// scrollingDoc builds a 100x50 document with a clipping list of ten rows.
func scrollingDoc(t *testing.T) (*Document, *Node, []*Node) {
	t.Helper()
	doc := NewDocument(100, 50)
	list := doc.CreateElement("div", geometry.NewRect(0, 10, 40, 20), "id", "list")
	list.SetOverflow(OverflowAuto, OverflowAuto)
	doc.AppendChild(doc.Root(), list)

	var rows []*Node
	for i := 0; i < 10; i++ {
		row := doc.CreateElement("a", geometry.NewRect(0, 10+float64(i)*5, 40, 5))
		doc.AppendChild(list, row)
		rows = append(rows, row)
	}
	return doc, list, rows
}

func TestNode_BoundingRectFollowsScroll(t *testing.T) {
	doc, list, rows := scrollingDoc(t)

	rect, err := rows[4].BoundingRect()
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(0, 30, 40, 5), rect)

	require.True(t, doc.ScrollBy(list, 0, 15))
	rect, err = rows[4].BoundingRect()
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(0, 15, 40, 5), rect)
}

func TestNode_ScrollMetrics(t *testing.T) {
	doc, list, _ := scrollingDoc(t)

	m := list.ScrollMetrics()
	assert.Equal(t, 20.0, m.ClientHeight)
	assert.Equal(t, 50.0, m.ScrollHeight)
	assert.Equal(t, 40.0, m.ScrollWidth)

	// Clamped to scrollHeight - clientHeight.
	doc.ScrollTo(list, 0, 1000)
	assert.Equal(t, 30.0, list.ScrollMetrics().ScrollTop)
	assert.False(t, doc.ScrollBy(list, 0, 5))
}

func TestNode_DetachedGeometry(t *testing.T) {
	doc, list, rows := scrollingDoc(t)

	require.NoError(t, doc.RemoveChild(list, rows[0]))
	_, err := rows[0].BoundingRect()
	assert.ErrorIs(t, err, ErrDetached)
	assert.ErrorIs(t, doc.RemoveChild(list, rows[0]), ErrNotChild)
}

func TestNode_FixedIgnoresScroll(t *testing.T) {
	doc := NewDocument(100, 50)
	tall := doc.CreateElement("div", geometry.NewRect(0, 0, 100, 200))
	bar := doc.CreateElement("nav", geometry.NewRect(0, 0, 100, 5))
	bar.SetFixed(true)
	btn := doc.CreateElement("button", geometry.NewRect(2, 1, 10, 3))
	doc.AppendChild(doc.Root(), tall)
	doc.AppendChild(doc.Root(), bar)
	doc.AppendChild(bar, btn)

	doc.ScrollBy(doc.Root(), 0, 40)

	rect, err := btn.BoundingRect()
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(2, 1, 10, 3), rect)

	rect, err = tall.BoundingRect()
	require.NoError(t, err)
	assert.Equal(t, -40.0, rect.Y)
}

func TestDocument_FocusScrollsIntoView(t *testing.T) {
	doc, list, rows := scrollingDoc(t)

	doc.Focus(rows[7])
	assert.True(t, doc.HasFocus(rows[7]))
	assert.Same(t, rows[7], doc.ActiveElement())

	rect, err := rows[7].BoundingRect()
	require.NoError(t, err)
	view, err := list.BoundingRect()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rect.Top(), view.Top())
	assert.LessOrEqual(t, rect.Bottom(), view.Bottom())
	assert.Equal(t, 20.0, list.ScrollMetrics().ScrollTop)

	doc.Blur(rows[1])
	assert.True(t, doc.HasFocus(rows[7]), "blurring another element keeps focus")
	doc.Blur(rows[7])
	assert.Nil(t, doc.ActiveElement())
}

func TestDocument_ClickCountsActivations(t *testing.T) {
	doc, _, rows := scrollingDoc(t)

	doc.Click(rows[2])
	doc.Click(rows[2])
	assert.Equal(t, 2, rows[2].Clicks())

	orphan := doc.CreateElement("button", geometry.NewRect(0, 0, 1, 1))
	doc.Click(orphan)
	assert.Zero(t, orphan.Clicks())
}

func TestDocument_ObserveMutations(t *testing.T) {
	doc := NewDocument(100, 50)

	var added, removed []string
	stop := doc.Observe(MutationFuncs{
		Added: func(roots []Element) {
			for _, r := range roots {
				added = append(added, r.ID())
			}
		},
		Removed: func(roots []Element) {
			for _, r := range roots {
				removed = append(removed, r.ID())
			}
		},
	})

	detached := doc.CreateElement("div", geometry.NewRect(0, 0, 10, 10), "id", "panel")
	doc.AppendChild(detached, doc.CreateElement("a", geometry.NewRect(0, 0, 5, 5), "id", "inner"))
	assert.Empty(t, added, "building a detached subtree is silent")

	doc.AppendChild(doc.Root(), detached)
	assert.Equal(t, []string{"panel"}, added)

	require.NoError(t, doc.RemoveChild(doc.Root(), detached))
	assert.Equal(t, []string{"panel"}, removed)

	doc.AppendChild(doc.Root(), detached)
	holder := doc.CreateElement("div", geometry.NewRect(0, 0, 10, 10), "id", "holder")
	doc.AppendChild(holder, detached)
	assert.Equal(t, []string{"panel", "panel"}, removed, "moving out of the document is a removal")
	assert.Equal(t, []string{"panel", "panel"}, added)

	stop()
	doc.AppendChild(doc.Root(), detached)
	assert.Len(t, added, 2)
}

func TestDocument_ElementFromPoint(t *testing.T) {
	doc, list, rows := scrollingDoc(t)
	overlay := doc.CreateElement("div", geometry.NewRect(0, 0, 100, 12), "id", "overlay")
	doc.AppendChild(doc.Root(), overlay)

	assert.Same(t, rows[0], doc.ElementFromPoint(geometry.Point{X: 5, Y: 14}))
	assert.Same(t, overlay, doc.ElementFromPoint(geometry.Point{X: 5, Y: 11}))
	// Rows overflowing the list are clipped away.
	assert.Same(t, doc.Root(), doc.ElementFromPoint(geometry.Point{X: 5, Y: 40}))
	assert.Nil(t, doc.ElementFromPoint(geometry.Point{X: -1, Y: 0}))

	doc.ScrollBy(list, 0, 20)
	assert.Same(t, rows[4], doc.ElementFromPoint(geometry.Point{X: 5, Y: 14}))
}

func TestDocumentOrder(t *testing.T) {
	doc, list, rows := scrollingDoc(t)
	footer := doc.CreateElement("footer", geometry.NewRect(0, 40, 100, 10))
	doc.AppendChild(doc.Root(), footer)

	els := []Element{footer, rows[3], list, rows[1], doc.Root()}
	SortByDocumentOrder(els)

	assert.Equal(t, []Element{doc.Root(), list, rows[1], rows[3], footer}, els)
	assert.Equal(t, -1, Compare(list, rows[0]))
	assert.Equal(t, 1, Compare(footer, rows[9]))
	assert.Equal(t, 0, Compare(footer, footer))
}

func TestNode_Identity(t *testing.T) {
	doc := NewDocument(10, 10)
	a := doc.CreateElement("A", geometry.NewRect(0, 0, 1, 1), "ID", "link", "href", "#")
	b := doc.CreateElement("span", geometry.NewRect(0, 0, 1, 1))
	doc.AppendChild(doc.Root(), a)
	doc.AppendChild(doc.Root(), b)

	assert.Equal(t, "link", a.ID())
	assert.Equal(t, "a", a.Tag())
	assert.Equal(t, "span", b.ID())
	assert.Equal(t, "#document", doc.Root().ID())
	assert.Nil(t, doc.Root().Parent())
	assert.Same(t, a, doc.ByID("link"))
	assert.Equal(t, a.Source(), doc.Root().Source().FirstChild)
}
