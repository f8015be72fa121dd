package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"snav/internal/dom"
	"snav/internal/geometry"
)

var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
	"head":     true,
}

// LoadHTML parses an HTML document. The body's children become children of
// the document root. Width and height in the body's inline style declare the
// viewport size, overriding opts.
func LoadHTML(r io.Reader, opts Options) (*dom.Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	body := page.Find("body").First()
	style, _ := body.Attr("style")
	viewport, err := parseStyle(style)
	if err != nil {
		return nil, fmt.Errorf("<body>: %w", err)
	}

	doc := newDocument(opts, viewport.rect.Width, viewport.rect.Height)
	b := &htmlBuilder{doc: doc}
	if err := b.build(doc.Root(), geometry.Point{}, body.Children()); err != nil {
		return nil, err
	}
	return doc, nil
}

type htmlBuilder struct {
	doc *dom.Document
}

func (b *htmlBuilder) build(parent *dom.Node, origin geometry.Point, sel *goquery.Selection) error {
	var err error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := s.Get(0)
		if skippedTags[src.Data] {
			return true
		}

		style, _ := s.Attr("style")
		layout, perr := parseStyle(style)
		if perr != nil {
			err = fmt.Errorf("<%s> %s: %w", src.Data, describe(s), perr)
			return false
		}
		if layout.hidden {
			return true
		}

		n := b.doc.Adopt(cloneElement(src), geometry.Rect{})
		place(n, layout, origin)
		n.SetText(ownText(src))
		b.doc.AppendChild(parent, n)

		err = b.build(n, originOf(n), s.Children())
		return err == nil
	})
	return err
}

// cloneElement copies an element without its tree links.
func cloneElement(src *html.Node) *html.Node {
	return &html.Node{
		Type:      html.ElementNode,
		Data:      src.Data,
		DataAtom:  src.DataAtom,
		Namespace: src.Namespace,
		Attr:      append([]html.Attribute(nil), src.Attr...),
	}
}

// ownText joins the element's direct text children.
func ownText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

func describe(s *goquery.Selection) string {
	if id, ok := s.Attr("id"); ok {
		return "#" + id
	}
	return fmt.Sprintf("at index %d", s.Index())
}
