package loader

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"snav/internal/dom"
	"snav/internal/geometry"
)

// Layout is the YAML document format.
type Layout struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
	Elements []LayoutElement `yaml:"elements"`
}

// LayoutElement is one element of a YAML layout. Rect is x, y, width, height
// relative to the parent.
type LayoutElement struct {
	Tag       string            `yaml:"tag"`
	ID        string            `yaml:"id"`
	Class     string            `yaml:"class"`
	Text      string            `yaml:"text"`
	Rect      []float64         `yaml:"rect"`
	Overflow  string            `yaml:"overflow"`
	OverflowX string            `yaml:"overflow_x"`
	OverflowY string            `yaml:"overflow_y"`
	Fixed     bool              `yaml:"fixed"`
	Attrs     map[string]string `yaml:"attrs"`
	Children  []LayoutElement   `yaml:"children"`
}

// LoadYAML parses a YAML layout.
func LoadYAML(r io.Reader, opts Options) (*dom.Document, error) {
	var layout Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	declared := layout.Viewport
	if err := checkRect(geometry.NewRect(0, 0, declared.Width, declared.Height)); err != nil {
		return nil, fmt.Errorf("viewport: %w", err)
	}
	doc := newDocument(opts, declared.Width, declared.Height)
	if err := buildLayout(doc, doc.Root(), geometry.Point{}, layout.Elements, "elements"); err != nil {
		return nil, err
	}
	return doc, nil
}

func buildLayout(doc *dom.Document, parent *dom.Node, origin geometry.Point, elements []LayoutElement, path string) error {
	for i, el := range elements {
		at := fmt.Sprintf("%s[%d]", path, i)
		layout, err := el.box()
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}

		tag := el.Tag
		if tag == "" {
			tag = "div"
		}
		n := doc.CreateElement(tag, geometry.Rect{}, el.attrs()...)
		place(n, layout, origin)
		n.SetText(el.Text)
		doc.AppendChild(parent, n)

		if err := buildLayout(doc, n, originOf(n), el.Children, at+".children"); err != nil {
			return err
		}
	}
	return nil
}

func (el LayoutElement) box() (box, error) {
	var b box
	switch len(el.Rect) {
	case 0:
	case 4:
		b.rect = geometry.NewRect(el.Rect[0], el.Rect[1], el.Rect[2], el.Rect[3])
		if err := checkRect(b.rect); err != nil {
			return box{}, err
		}
	default:
		return box{}, fmt.Errorf("rect needs 4 values, got %d", len(el.Rect))
	}

	x, y := el.Overflow, el.Overflow
	if el.OverflowX != "" {
		x = el.OverflowX
	}
	if el.OverflowY != "" {
		y = el.OverflowY
	}
	var err error
	if b.overflowX, err = parseOverflow(x); err != nil {
		return box{}, err
	}
	if b.overflowY, err = parseOverflow(y); err != nil {
		return box{}, err
	}
	b.fixed = el.Fixed
	return b, nil
}

// attrs flattens the element's attributes into key/value pairs, id and class
// first, the rest sorted by name.
func (el LayoutElement) attrs() []string {
	var out []string
	if el.ID != "" {
		out = append(out, "id", el.ID)
	}
	if el.Class != "" {
		out = append(out, "class", el.Class)
	}
	for _, k := range slices.Sorted(maps.Keys(el.Attrs)) {
		out = append(out, k, el.Attrs[k])
	}
	return out
}
