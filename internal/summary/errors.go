package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no monthly rows to start from
	ErrEmptyInput = errors.New("no monthly play data")

	// ErrMalformedInput is the base error of every MalformedInputError
	ErrMalformedInput = errors.New("malformed monthly play data")
)

// MalformedInputError describes the first sparse row that breaks the ordering contract
type MalformedInputError struct {
	Err    error     // always ErrMalformedInput
	Index  int       // position of the offending row
	Month  YearMonth // month of the offending row
	Reason string
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: row %d (%s): %s", e.Err.Error(), e.Index, e.Month, e.Reason)
}

// Unwrap returns the underlying error
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func newMalformedInputError(index int, month YearMonth, reason string) *MalformedInputError {
	return &MalformedInputError{
		Err:    ErrMalformedInput,
		Index:  index,
		Month:  month,
		Reason: reason,
	}
}
