// Package apperror defines the error kinds surfaced by the REST layer.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindDataSource Kind = iota
	KindValidation
	KindNotFound
)

// Error carries a client-facing message and, for data source failures,
// the underlying driver error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the kind onto an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// DataSource wraps a driver, connection or query failure. message is the
// generic text returned to clients.
func DataSource(message string, err error) error {
	return &Error{Kind: KindDataSource, Message: message, Err: err}
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}
