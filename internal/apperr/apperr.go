// Package apperr defines the typed errors the domain services raise.
// Transport code maps a Kind to an HTTP status; services never format
// transport responses themselves.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
)

var defaultMessages = map[Kind]string{
	Internal:     "internal server error",
	BadRequest:   "invalid request",
	Unauthorized: "authentication required",
	Forbidden:    "operation not allowed",
	NotFound:     "resource not found",
	Conflict:     "resource conflict",
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

func Wrap(kind Kind, message string, err error) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf classifies any error. Untyped errors fall back to Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// MessageOf returns the typed error's message, or the Internal default for
// untyped errors so that raw store errors never leak to callers.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return defaultMessages[Internal]
}

func DefaultMessage(kind Kind) string {
	return defaultMessages[kind]
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
