package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrStorage  = errors.New("storage failure")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("session token expired")
	ErrTokenInvalid       = errors.New("invalid session token")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Validation errors
	ErrValidation = errors.New("validation failed")
)

// Account errors
var (
	ErrDuplicateLogin  = errors.New("login ID already in use")
	ErrAccountNotFound = notFound("account not found")
)

// Student errors
var (
	ErrDuplicateRoll   = errors.New("roll number already exists")
	ErrStudentNotFound = notFound("student not found")
)

// Ledger errors
var (
	ErrMarksNotFound      = notFound("marks entry not found")
	ErrAttendanceNotFound = notFound("attendance entry not found")
)

// notFound builds a resource-specific error that unwraps to ErrNotFound, so
// callers can match either the specific sentinel or the whole category.
func notFound(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidation,
		Message: message,
	}
}

// NewForbiddenError creates a permission error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// NewStorageError wraps a storage-layer failure so callers can treat every
// driver error uniformly via errors.Is(err, ErrStorage).
func NewStorageError(cause error, message string) error {
	return &CustomError{
		Err:     ErrStorage,
		Cause:   cause,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Cause   error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
