package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"snav/internal/dom"
	"snav/internal/geometry"
)

// Entry describes one navigable element for listings.
type Entry struct {
	Element    dom.Element
	Rect       geometry.Rect
	Detached   bool
	Visible    bool
	Ratio      float64
	Interested bool
}

// Entries lists the navigable set in document order. With visibleOnly set,
// only the visible set is listed.
func (s *Session) Entries(visibleOnly bool) []Entry {
	els := s.registry.Navigable()
	if visibleOnly {
		els = s.registry.Visible()
	}

	current := s.interest.Current()
	out := make([]Entry, 0, len(els))
	for _, el := range els {
		e := Entry{
			Element:    el,
			Visible:    s.registry.IsVisible(el),
			Interested: el == current,
		}
		rect, err := el.BoundingRect()
		if err != nil {
			e.Detached = true
		} else {
			e.Rect = rect
		}
		e.Ratio, _ = s.observer.Ratio(el)
		out = append(out, e)
	}
	return out
}

// Dump writes the navigable (or visible) set as a table.
func (s *Session) Dump(w io.Writer, visibleOnly bool) error {
	entries := s.Entries(visibleOnly)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		mark := ""
		if e.Interested {
			mark = "*"
		}
		rect := "detached"
		if !e.Detached {
			rect = fmt.Sprintf("%g,%g %gx%g", e.Rect.X, e.Rect.Y, e.Rect.Width, e.Rect.Height)
		}
		rows = append(rows, []string{
			mark,
			e.Element.ID(),
			tagOf(e.Element),
			rect,
			fmt.Sprintf("%.2f", e.Ratio),
			fmt.Sprintf("%t", e.Visible),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TAG", "RECT", "RATIO", "VISIBLE").
		Rows(rows...)

	nav, vis := s.registry.Len()
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d navigable, %d visible\n", nav, vis)
	return err
}

func tagOf(el dom.Element) string {
	if n, ok := el.(*dom.Node); ok {
		return n.Tag()
	}
	return ""
}
