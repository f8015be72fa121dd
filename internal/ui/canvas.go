package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"snav/internal/geometry"
)

// paint selects the style of a cell.
type paint int

const (
	paintNone paint = iota
	paintBorder
	paintScroller
	paintText
	paintNavigable
	paintFocused
	paintHighlight
	paintRing
)

// cellRect is a half-open rectangle of terminal cells.
type cellRect struct {
	x0, y0, x1, y1 int
}

func toCells(r geometry.Rect) cellRect {
	return cellRect{
		x0: int(math.Floor(r.Left())),
		y0: int(math.Floor(r.Top())),
		x1: int(math.Ceil(r.Right())),
		y1: int(math.Ceil(r.Bottom())),
	}
}

func (a cellRect) intersect(b cellRect) cellRect {
	return cellRect{
		x0: max(a.x0, b.x0),
		y0: max(a.y0, b.y0),
		x1: min(a.x1, b.x1),
		y1: min(a.y1, b.y1),
	}
}

func (a cellRect) empty() bool {
	return a.x1 <= a.x0 || a.y1 <= a.y0
}

func (a cellRect) contains(x, y int) bool {
	return x >= a.x0 && x < a.x1 && y >= a.y0 && y < a.y1
}

type frameChars struct {
	h, v, tl, tr, bl, br rune
}

var (
	lightFrame  = frameChars{'─', '│', '┌', '┐', '└', '┘'}
	roundFrame  = frameChars{'─', '│', '╭', '╮', '╰', '╯'}
	heavyFrame  = frameChars{'━', '┃', '┏', '┓', '┗', '┛'}
	dottedFrame = frameChars{'┄', '┆', '·', '·', '·', '·'}
)

// canvas is a grid of cells the document is painted onto.
type canvas struct {
	width, height int
	cells         [][]rune
	paints        [][]paint
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  max(width, 0),
		height: max(height, 0),
	}
	c.cells = make([][]rune, c.height)
	c.paints = make([][]paint, c.height)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", c.width))
		c.paints[y] = make([]paint, c.width)
	}
	return c
}

func (c *canvas) bounds() cellRect {
	return cellRect{0, 0, c.width, c.height}
}

func (c *canvas) set(x, y int, r rune, p paint, clip cellRect) {
	if !clip.contains(x, y) || !c.bounds().contains(x, y) {
		return
	}
	c.cells[y][x] = r
	c.paints[y][x] = p
}

func (c *canvas) fill(r cellRect, p paint, clip cellRect) {
	area := r.intersect(clip).intersect(c.bounds())
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			c.cells[y][x] = ' '
			c.paints[y][x] = p
		}
	}
}

func (c *canvas) frame(r cellRect, chars frameChars, p paint, clip cellRect) {
	if r.empty() {
		return
	}
	right, bottom := r.x1-1, r.y1-1
	for x := r.x0 + 1; x < right; x++ {
		c.set(x, r.y0, chars.h, p, clip)
		c.set(x, bottom, chars.h, p, clip)
	}
	for y := r.y0 + 1; y < bottom; y++ {
		c.set(r.x0, y, chars.v, p, clip)
		c.set(right, y, chars.v, p, clip)
	}
	c.set(r.x0, r.y0, chars.tl, p, clip)
	c.set(right, r.y0, chars.tr, p, clip)
	c.set(r.x0, bottom, chars.bl, p, clip)
	c.set(right, bottom, chars.br, p, clip)
}

// text writes s from (x, y), stopping before maxX. Wide runes take two cells.
func (c *canvas) text(x, y int, s string, maxX int, p paint, clip cellRect) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			return
		}
		c.set(x, y, r, p, clip)
		for i := 1; i < w; i++ {
			c.set(x+i, y, 0, p, clip)
		}
		x += w
	}
}

// String returns the grid without styling.
func (c *canvas) String() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(plainRow(row), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid with each run of cells styled by its paint.
func (c *canvas) Render(styles *Styles) string {
	byPaint := map[paint]lipgloss.Style{
		paintBorder:    styles.Border,
		paintScroller:  styles.Scroller,
		paintText:      styles.Text,
		paintNavigable: styles.Navigable,
		paintFocused:   styles.Focused,
		paintHighlight: styles.Highlight,
		paintRing:      styles.Ring,
	}

	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.paints[y][x] == c.paints[y][start] {
				continue
			}
			run := plainRow(row[start:x])
			if style, ok := byPaint[c.paints[y][start]]; ok {
				run = style.Render(run)
			}
			b.WriteString(run)
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// plainRow drops the placeholder cells that follow wide runes.
func plainRow(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
