package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset reports that no records are available to work with:
// every row was dropped during date validation, or aggregation was asked
// to summarize zero records.
var ErrEmptyDataset = errors.New("dataset contains no records")

// FormatError reports unparsable input structure: a missing required column,
// an inconsistent row, or a malformed numeric cell. Line is the 1-based
// input line, zero when the problem is not tied to a single line.
type FormatError struct {
	Line   int
	Column string
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("format error: line %d, column %q: %s", e.Line, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("format error: column %q: %s", e.Column, e.Reason)
	default:
		return fmt.Sprintf("format error: %s", e.Reason)
	}
}

// InsufficientDataError reports a numeric column with no valid values to
// compute an imputation mean from.
type InsufficientDataError struct {
	Column string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("column %q has no valid values to impute from", e.Column)
}
