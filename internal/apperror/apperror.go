// Package apperror defines the application error taxonomy. Services and
// middleware return these; a single Fiber error handler translates them to
// HTTP responses, so handlers never map failures themselves.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

type AppError struct {
	Err      error
	Message  string
	Messages []string // field-level validation messages, when present
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports one or more failed field constraints. The messages
// are returned verbatim in the response body.
func Validation(messages ...string) *AppError {
	msg := "validation failed"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &AppError{
		Err:      ErrValidation,
		Message:  msg,
		Messages: messages,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrAuthentication, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrAuthorization, Message: message}
}

func NotFound(resource string, key any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}
