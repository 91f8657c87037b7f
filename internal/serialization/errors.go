package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrNotAnObject       = errors.New("config document is not an object")
)

// DecodeError reports a document that could not be decoded.
type DecodeError struct {
	Format Format
	Source string // File path, or empty for in-memory data
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("decode %s %q: %v", e.Format, e.Source, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
