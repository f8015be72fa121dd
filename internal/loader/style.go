package loader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"snav/internal/dom"
	"snav/internal/geometry"
)

// box is the parsed layout of one element, relative to its parent.
type box struct {
	rect      geometry.Rect
	overflowX dom.Overflow
	overflowY dom.Overflow
	fixed     bool
	hidden    bool
}

// parseStyle reads the layout properties of an inline style attribute.
// Properties it does not know are ignored.
func parseStyle(style string) (box, error) {
	var b box
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); !errors.Is(err, io.EOF) {
				return box{}, fmt.Errorf("invalid style: %w", err)
			}
			if err := checkRect(b.rect); err != nil {
				return box{}, err
			}
			return b, nil
		case css.DeclarationGrammar:
			prop := strings.ToLower(string(data))
			if err := b.apply(prop, declarationValues(p.Values())); err != nil {
				return box{}, fmt.Errorf("%s: %w", prop, err)
			}
		}
	}
}

// declarationValues returns the lowercased value tokens of a declaration,
// stopping at a trailing !important.
func declarationValues(tokens []css.Token) []string {
	var values []string
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.DelimToken:
			return values
		}
		values = append(values, strings.ToLower(string(t.Data)))
	}
	return values
}

func (b *box) apply(prop string, values []string) error {
	var err error
	switch prop {
	case "left":
		b.rect.X, err = lengthValue(values)
	case "top":
		b.rect.Y, err = lengthValue(values)
	case "width":
		b.rect.Width, err = lengthValue(values)
	case "height":
		b.rect.Height, err = lengthValue(values)
	case "overflow":
		switch len(values) {
		case 1:
			if b.overflowX, err = parseOverflow(values[0]); err == nil {
				b.overflowY = b.overflowX
			}
		case 2:
			if b.overflowX, err = parseOverflow(values[0]); err == nil {
				b.overflowY, err = parseOverflow(values[1])
			}
		default:
			err = fmt.Errorf("expected one or two values, got %d", len(values))
		}
	case "overflow-x":
		b.overflowX, err = overflowValue(values)
	case "overflow-y":
		b.overflowY, err = overflowValue(values)
	case "position":
		b.fixed = slices.Equal(values, []string{"fixed"})
	case "display":
		b.hidden = slices.Equal(values, []string{"none"})
	}
	return err
}

func lengthValue(values []string) (float64, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("expected one length, got %d values", len(values))
	}
	return parseLength(values[0])
}

func overflowValue(values []string) (dom.Overflow, error) {
	if len(values) != 1 {
		return "", fmt.Errorf("expected one value, got %d", len(values))
	}
	return parseOverflow(values[0])
}

// parseLength converts a number or px dimension. Non-finite values are
// rejected.
func parseLength(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid length %q", value)
	}
	return v, nil
}

// checkRect rejects non-finite coordinates and negative sizes.
func checkRect(r geometry.Rect) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite rect %g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("negative size %gx%g", r.Width, r.Height)
	}
	return nil
}

func parseOverflow(value string) (dom.Overflow, error) {
	if value == "" {
		return "", nil
	}
	o, ok := dom.ParseOverflow(value)
	if !ok {
		return "", fmt.Errorf("invalid overflow %q", value)
	}
	return o, nil
}

// place converts a parent-relative box into document coordinates and applies
// it to n.
func place(n *dom.Node, b box, origin geometry.Point) {
	rect := b.rect
	if !b.fixed {
		rect = rect.Translate(origin.X, origin.Y)
	}
	n.SetFrame(rect)
	if b.overflowX != "" || b.overflowY != "" {
		n.SetOverflow(b.overflowX, b.overflowY)
	}
	n.SetFixed(b.fixed)
}

func originOf(n *dom.Node) geometry.Point {
	f := n.Frame()
	return geometry.Point{X: f.X, Y: f.Y}
}
