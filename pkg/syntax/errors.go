package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch means the line does not follow the shape of its form.
	ErrMismatch = errors.New("pattern mismatch")
	// ErrMissingContent means the statement header is valid but nothing follows "~:".
	ErrMissingContent = errors.New("missing content")
	// ErrNumberRange means a numeric field does not fit in an int.
	ErrNumberRange = errors.New("number out of range")
)

// Error describes why a line could not be extracted.
type Error struct {
	Form   Form
	Column int // 1-based
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s at column %d: %s", e.Form, e.Column, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
