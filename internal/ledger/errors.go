package ledger

import (
	"errors"
	"fmt"
)

// Common ledger errors
var (
	// ErrLedgerLoad is returned when an existing ledger file cannot be read.
	ErrLedgerLoad = errors.New("failed to load ledger file")

	// ErrLedgerPersist is returned when rewriting the ledger file fails.
	// The in-memory table is rolled back to the last persisted state, so
	// memory never runs ahead of disk.
	ErrLedgerPersist = errors.New("failed to persist ledger file")

	// ErrInvalidStatus is returned when a status update names a payment
	// state outside {Outstanding, Paid}.
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// LedgerError wraps errors with additional context about ledger operations.
type LedgerError struct {
	// Op is the operation that failed (e.g., "Open", "Append").
	Op string

	// Path is the ledger file involved (if available).
	Path string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ledger: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("ledger: %s failed (file: %s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("ledger: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *LedgerError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
