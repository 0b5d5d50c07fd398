package invoice

import (
	"errors"
	"fmt"
)

// Common invoice creation errors
var (
	// ErrInvalidDateFormat is returned when the issue date string does not
	// match YYYY-MM-DD. Nothing is allocated or persisted in that case.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// ComposeError wraps errors with additional context about invoice creation
// failures.
type ComposeError struct {
	// Op is the operation that failed (e.g., "CreateInvoice").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ComposeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ComposeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ComposeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
