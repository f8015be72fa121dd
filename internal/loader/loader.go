// Package loader builds documents from layout files.
//
// Two formats are understood. YAML layouts describe an element tree with
// explicit rectangles. HTML documents carry their geometry in inline styles
// (left, top, width, height, overflow, position). In both, positions are
// relative to the parent element, except for fixed elements, which are
// positioned against the viewport.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"snav/internal/dom"
)

// ErrUnsupportedFormat is returned for files whose format cannot be determined.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a document format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Options control document construction.
type Options struct {
	// Width and Height size the viewport unless the document declares its own:
	// the YAML viewport section, or width and height on the HTML body's style.
	Width  float64
	Height float64
}

// DefaultOptions returns a standard 80x24 terminal viewport.
func DefaultOptions() Options {
	return Options{Width: 80, Height: 24}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// LoadFile reads and parses the document at path.
func LoadFile(path string, opts Options) (*dom.Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := Load(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// Load parses a document in the given format.
func Load(r io.Reader, format Format, opts Options) (*dom.Document, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		defaults := DefaultOptions()
		opts.Width, opts.Height = defaults.Width, defaults.Height
	}
	switch format {
	case FormatYAML:
		return LoadYAML(r, opts)
	case FormatHTML:
		return LoadHTML(r, opts)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// newDocument sizes a document from the size it declares, falling back to
// opts on each axis left undeclared. A declared size is recorded on the
// document so hosts keep it.
func newDocument(opts Options, width, height float64) *dom.Document {
	w, h := opts.Width, opts.Height
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	doc := dom.NewDocument(w, h)
	if width > 0 || height > 0 {
		doc.SetDeclaredSize(w, h)
	}
	return doc
}
