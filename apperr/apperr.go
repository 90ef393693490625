// Package apperr provides typed domain errors. Services return these and the
// HTTP layer maps them to status codes and machine-readable payload codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
	KindUnauthorized
	// KindPrecondition indicates a recoverable, user-actionable precondition
	// failure (e.g. completion blocked by a pending inventory review).
	KindPrecondition
	KindInternal
)

// Error is a domain error with a typed Kind and an optional machine code.
type Error struct {
	Kind    Kind
	Code    string // stable machine-readable code, e.g. "INVENTORY_REVIEW_REQUIRED"
	Message string
	Err     error // underlying cause (optional)
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

// HTTPStatus maps the error kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPrecondition:
		return http.StatusPreconditionFailed
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithCode returns the error with its machine code set.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Precondition(message string) *Error { return New(KindPrecondition, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// GetKind extracts the kind from an error chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
