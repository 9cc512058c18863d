package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("empty document")
	ErrProviderCall      = errors.New("provider call failed")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrNotFound          = errors.New("resource not found")
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrValidation        = errors.New("validation error")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

// UnsupportedFormat is returned when the declared document format has no
// decoder. This is one of the two failures surfaced to API callers.
func UnsupportedFormat(format string) *AppError {
	return &AppError{
		Err:        ErrUnsupportedFormat,
		Code:       "UNSUPPORTED_FORMAT",
		Message:    fmt.Sprintf("document format %q is not supported", format),
		StatusCode: http.StatusBadRequest,
	}
}

// EmptyDocument is returned when the decoded document text is empty or
// whitespace only. Surfaced to API callers.
func EmptyDocument() *AppError {
	return &AppError{
		Err:        ErrEmptyDocument,
		Code:       "EMPTY_DOCUMENT",
		Message:    "document contains no extractable text",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// ProviderCall wraps a network or model error from a single provider variant.
// Recoverable: the cascade moves on to the next variant or provider.
func ProviderCall(provider string, err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrProviderCall, err),
		Code:       "PROVIDER_CALL_FAILED",
		Message:    fmt.Sprintf("provider %s call failed", provider),
		StatusCode: http.StatusBadGateway,
	}
}

// MalformedResponse wraps a JSON parse or schema normalization failure for a
// provider response. Recoverable, same as ProviderCall.
func MalformedResponse(provider string, err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		Code:       "MALFORMED_PROVIDER_RESPONSE",
		Message:    fmt.Sprintf("provider %s returned an unusable response", provider),
		StatusCode: http.StatusBadGateway,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
