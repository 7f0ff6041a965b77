package errors

import "fmt"

// ErrorCode represents a gqlscout error code.
type ErrorCode string

const (
	ErrConfiguration     ErrorCode = "CONFIGURATION"      // 500, fatal at startup
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrSchemaUnavailable ErrorCode = "SCHEMA_UNAVAILABLE" // 503
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// ScoutError represents a structured error with code, status, and details.
type ScoutError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *ScoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ScoutError) Unwrap() error {
	return e.Cause
}

// NewConfiguration creates a 500 error for invalid or missing settings.
// These are fatal at process start and never retried.
func NewConfiguration(msg string, cause error) *ScoutError {
	return &ScoutError{
		Code:    ErrConfiguration,
		Status:  500,
		Message: msg,
		Cause:   cause,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ScoutError {
	return &ScoutError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown template or keyword category.
func NewNotFound(kind, identifier string) *ScoutError {
	return &ScoutError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewSchemaUnavailable creates a 503 error for when no usable SDL text could
// be obtained: no local copy exists and the remote fetch failed.
func NewSchemaUnavailable(cause error) *ScoutError {
	msg := "schema not available"
	if cause != nil {
		msg = fmt.Sprintf("schema not available: %v", cause)
	}
	return &ScoutError{
		Code:    ErrSchemaUnavailable,
		Status:  503,
		Message: msg,
		Cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ScoutError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ScoutError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if an error is a ScoutError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ScoutError); ok {
		return sErr.Code == code
	}
	return false
}
