package importer

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRead            = errors.New("cannot read input file")
	ErrMissingField        = errors.New("missing field")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrColumnMismatch      = errors.New("column count does not match header")
	ErrMalformedItem       = errors.New("malformed item")
)

// RowError ties a normalization failure to its source row.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
