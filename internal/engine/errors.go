package engine

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indicates a required header is absent from the source.
var ErrMissingColumn = errors.New("missing required column")

// ErrNoHeader indicates the source has no rows at all.
var ErrNoHeader = errors.New("source has no header row")

// ErrBadNumber indicates a numeric cell could not be parsed.
var ErrBadNumber = errors.New("invalid number")

// DataLoadError is returned when a dataset cannot be loaded at startup.
type DataLoadError struct {
	Dataset string
	Path    string
	Row     int    // 1-based source line, 0 when not row specific
	Column  string // header name, empty when not column specific
	Err     error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load %s dataset %q: row %d column %q: %v", e.Dataset, e.Path, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s dataset %q: column %q: %v", e.Dataset, e.Path, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load %s dataset %q: row %d: %v", e.Dataset, e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s dataset %q: %v", e.Dataset, e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
