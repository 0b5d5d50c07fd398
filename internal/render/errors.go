package render

import (
	"errors"
	"fmt"
)

// Common rendering errors
var (
	// ErrMissingTemplate is returned when the invoice template file does not
	// exist. This is fatal at startup: nothing can be rendered without it.
	ErrMissingTemplate = errors.New("invoice template file not found")

	// ErrDocumentWrite is returned when the rendered invoice document cannot
	// be written, permission errors included.
	ErrDocumentWrite = errors.New("failed to write invoice document")
)

// RenderError wraps errors with additional context about rendering failures.
type RenderError struct {
	// Op is the operation that failed (e.g., "NewService", "Render").
	Op string

	// Path is the template or output file involved (if available).
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("render: %s failed (file: %s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
