package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid credentials")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrSessionExpired     = New("SESSION_EXPIRED", http.StatusUnauthorized, "session expired, sign in again")
	ErrUpstream           = New("UPSTREAM_ERROR", http.StatusBadGateway, "something went wrong")
)

// FromStatus maps an upstream HTTP status to the console error taxonomy:
// 401 forces a session teardown, 403/404/500 surface as notifications, and
// anything else falls back to a generic upstream error carrying the
// server-provided message when available.
func FromStatus(status int, message string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return Clone(ErrUnauthorized, "unauthorized, redirecting to login")
	case http.StatusForbidden:
		return Clone(ErrForbidden, "access denied")
	case http.StatusNotFound:
		return Clone(ErrNotFound, "not found")
	case http.StatusInternalServerError:
		return New("UPSTREAM_INTERNAL", http.StatusBadGateway, "internal server error")
	default:
		if message == "" {
			message = ErrUpstream.Message
		}
		return Clone(ErrUpstream, message)
	}
}

// IsUnauthorized reports whether the error demands a forced logout.
func IsUnauthorized(err error) bool {
	e := FromError(err)
	return e != nil && e.Status == http.StatusUnauthorized
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
