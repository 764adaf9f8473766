// Package errors provides structured error types for codemap.
//
// Error codes give CLI and API surfaces a machine-readable classification
// while keeping human-readable messages for display. Codes follow a
// hierarchical naming convention:
//   - INVALID_*: input validation failures
//   - NOT_FOUND: resource not found
//   - NETWORK_ERROR / TIMEOUT: data source failures
//   - MALFORMED_TREE: tree invariant violations at a boundary
//   - INTERNAL_ERROR: unexpected internal failures
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch tree for %s/%s", owner, repo)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidMode  Code = "INVALID_MODE"
	ErrCodeInvalidRepo  Code = "INVALID_REPO"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeMalformedTree Code = "MALFORMED_TREE"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
