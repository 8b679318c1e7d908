package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error kinds surfaced by lookups. Data-fetch paths log these and degrade to nil;
// only the username validator shows them to the visitor.
var (
	ErrNotFound          = errors.New("not found")
	ErrRateLimited       = errors.New("rate limited")
	ErrFormatInvalid     = errors.New("invalid format")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrInvalidInput      = errors.New("invalid input")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// StatusError maps an HTTP status code from an upstream lookup to an error kind.
// 2xx yields nil.
func StatusError(status int) error {
	switch {
	case status/100 == 2:
		return nil
	case status == 404:
		return ErrNotFound
	case status == 403 || status == 429:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrNetwork, status)
	}
}
