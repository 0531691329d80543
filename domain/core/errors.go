package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	// Precondition errors at the loader boundary
	ErrLengthMismatch  = errors.New("column lengths differ")
	ErrNonNumeric      = errors.New("non-numeric cell")
	ErrEmptyDataset    = errors.New("dataset has no data rows")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrSameColumn      = errors.New("the two compared columns must differ")
)

// NewLengthMismatchError reports two sequences of different lengths
func NewLengthMismatchError(lenA, lenB int) error {
	return fmt.Errorf("%w: %d vs %d rows", ErrLengthMismatch, lenA, lenB)
}

// NewColumnNotFoundError reports an unknown column header
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, name)
}

// NewNonNumericError reports a cell that is neither blank nor a number.
// row is the 1-based spreadsheet row.
func NewNonNumericError(column string, row int, raw string) error {
	return fmt.Errorf("%w in column %q row %d: %q", ErrNonNumeric, column, row, raw)
}
