// Package render draws chart definitions as PNG or SVG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cropsync/internal/models"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrUnsupportedKind   = errors.New("unsupported chart kind")
	// ErrEmptyChart is returned for pie and ring charts whose slices are all
	// zero; there is no proportion to draw.
	ErrEmptyChart = errors.New("chart has no non-zero values")
)

const (
	widthPx  = 800
	heightPx = 450
)

// ParseFormat accepts "png" and "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	case "":
		return PNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Chart writes def to w.
func Chart(w io.Writer, def *models.ChartDefinition, format Format) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrUnsupportedKind)
	}
	switch format {
	case PNG, SVG:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch def.Kind {
	case models.KindRing, models.KindPie:
		return proportion(w, def, format)
	case models.KindBar:
		return bars(w, def, format)
	case models.KindLine:
		return lines(w, def, format)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedKind, def.Kind)
}

// hexColor parses "#rrggbb". Empty strings yield gray.
func hexColor(s string) drawing.Color {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return drawing.ColorFromHex("cccccc")
	}
	return drawing.ColorFromHex(s)
}
