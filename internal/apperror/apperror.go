// Package apperror defines the error taxonomy shared by the service and
// HTTP layers. Services return these; handlers map them to status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// AppError carries a sentinel kind plus a human-readable message safe to
// return to clients.
type AppError struct {
	Err     error  // sentinel kind
	Message string // client-facing message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status code. Unknown kinds map
// to 500, same as ErrInternal.
func (e *AppError) StatusCode() int {
	switch {
	case errors.Is(e.Err, ErrValidation), errors.Is(e.Err, ErrDuplicateKey):
		return http.StatusBadRequest
	case errors.Is(e.Err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(e.Err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(e.Err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

func DuplicateKey(message string) *AppError {
	return &AppError{Err: ErrDuplicateKey, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Internal(message string) *AppError {
	return &AppError{Err: ErrInternal, Message: message}
}
