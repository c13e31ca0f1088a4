package importer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDateColumn        = errors.New("no date column found")
	ErrMissingDescriptionColumn = errors.New("no description column found")
	ErrMissingAmountColumn      = errors.New("no amount/debit/credit column found")

	// ErrNoData is returned when the file has no data rows.
	ErrNoData = errors.New("no data found in CSV file")
	// ErrMissingField marks a row too short to hold a required cell.
	ErrMissingField = errors.New("missing field")
)

// FormatError aborts a whole import: the headers could not be mapped to the
// roles a transaction needs.
type FormatError struct {
	Kind    error
	Headers []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("detect format: %v (headers: %q)", e.Kind, e.Headers)
}

func (e *FormatError) Unwrap() error { return e.Kind }

// RowError describes a single row that was dropped during normalization.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
