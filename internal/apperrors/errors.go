package apperrors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is an error constructed with an intended HTTP status. The
// classifier passes its status and message through unchanged, so route logic
// raises one of these whenever it knows what the caller should see.
type AppError struct {
	Status  int
	Message string
	Code    string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message)
}

func Timeout(message string) *AppError {
	return New(http.StatusGatewayTimeout, message)
}

func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}

// ValidationError carries the names of the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}
