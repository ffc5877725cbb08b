package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error. Message is safe to show to callers;
// Err carries the underlying cause and is only ever logged.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrSlotFull:
		return http.StatusBadRequest
	case ErrTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the error is attributable to the caller.
func (e *AppError) IsClientError() bool {
	return e.StatusCode() < http.StatusInternalServerError
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrSlotFull
	ErrInternal
	ErrTooLarge
)

func NewNotFound(message string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: message,
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewSlotFull(message string) *AppError {
	return &AppError{
		Code:    ErrSlotFull,
		Message: message,
	}
}

func NewTooLarge(message string, err error) *AppError {
	return &AppError{
		Code:    ErrTooLarge,
		Message: message,
		Err:     err,
	}
}

// NewInternal wraps a datastore or runtime failure. message is the generic text
// returned to the caller.
func NewInternal(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string, err error) *AppError {
	return NewNotFound(message, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(message string, err error) *AppError {
	return NewInternal(message, err)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
