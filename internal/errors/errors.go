package errors

import "fmt"

// Error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeServer       = "SERVER_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP status and error code.
type AppError struct {
	Code    string // Error code (e.g., "UNAUTHORIZED", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code, 0 when the error never reached a server
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewUnauthorizedError creates a new UNAUTHORIZED error (HTTP 401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewValidationError creates a new VALIDATION_ERROR. The message carries the
// server response body (or local validation detail) unchanged.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Status:  422,
	}
}

// NewServerError creates a new SERVER_ERROR for a 5xx response.
func NewServerError(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: message,
		Status:  status,
	}
}

// NewTimeoutError creates a new TIMEOUT error.
func NewTimeoutError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeTimeout,
		Message: "request timed out",
		Err:     err,
	}
}

// NewNotFoundError creates a new NOT_FOUND error for a locally missing entity.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewInternalError creates a new INTERNAL_ERROR wrapping err.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// Message extracts the AppError message from err, falling back to the given
// default. Store actions use this to surface server-provided messages to the
// UI without leaking transport detail.
func Message(err error, fallback string) string {
	if appErr, ok := err.(*AppError); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is an UNAUTHORIZED AppError.
func IsUnauthorized(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == ErrCodeUnauthorized
}

// IsNotFound reports whether err is a NOT_FOUND AppError.
func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == ErrCodeNotFound
}
