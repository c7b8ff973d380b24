package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the request boundary.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	AlreadyApproved
	Auth
	Forbidden
	Persistence
	Notification
)

// Error is the single error type handed from the registry and storage layers
// to the HTTP handlers. Two errors are the same error when their codes match.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	wrapped := *base
	wrapped.Err = err
	return &wrapped
}

// Details returns the lower-level message of a wrapped error, if any.
func (e *Error) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Status maps an error onto the HTTP status reported to the caller.
func Status(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case Validation, AlreadyApproved:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrValidation  = New(Validation, "VALIDATION_ERROR", "Invalid request data")
	ErrNotFound    = New(NotFound, "NOT_FOUND", "Record not found")
	ErrPersistence = New(Persistence, "DB_ERROR", "Database error")
	ErrReference   = New(Validation, "INVALID_REFERENCE", "Referenced record does not exist")
	ErrDuplicate   = New(Validation, "DUPLICATE", "Record already exists")
	ErrNotify      = New(Notification, "NOTIFICATION_ERROR", "Failed to dispatch notification")
)
