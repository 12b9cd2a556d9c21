// Package errors defines the error kind surfaced to envgen users. There is a
// single kind on purpose: every failure the tool reports is a human-readable
// message, optionally wrapping the underlying cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the generic tool error. Callers should display Message verbatim.
type Error struct {
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New creates a tool error with the given message.
func New(message string) *Error {
	return &Error{Message: message}
}

// Newf creates a tool error with a formatted message.
func Newf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a tool error that keeps err available to errors.Is/As while
// presenting message to the user.
func Wrap(err error, message string) *Error {
	return &Error{Message: message, Wrapped: err}
}

// IsUserError reports whether err is (or wraps) a tool error, i.e. something
// worth showing without a stack of internal context.
func IsUserError(err error) bool {
	var toolErr *Error
	return stderrors.As(err, &toolErr)
}
