// Package apperr defines the application error taxonomy: validation,
// not-found, business-rule, auth, and unexpected failures, each carrying the
// HTTP status the boundary should map it to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an operational error with a client-safe message.
type Error struct {
	Status  int
	Message string
	Err     error // optional cause, never shown to clients in production
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation is a 400 for missing or malformed input.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound is a 404 naming the entity that did not resolve.
func NotFound(entity string) *Error {
	return &Error{Status: http.StatusNotFound, Message: entity + " not found"}
}

// NotFoundf is a 404 with a formatted message, for when the plain
// "<entity> not found" shape cannot carry enough detail.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict is a 400 business-rule violation (duplicate name, insufficient
// stock, and so on) with a descriptive message.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized is a 401.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden is a 403.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Internal wraps an unexpected failure. The cause is kept for logs; clients
// see only the generic message.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as Internal
// with the given fallback message.
func From(err error, fallback string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(fallback, err)
}
