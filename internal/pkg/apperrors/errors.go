package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Membership errors
var (
	ErrAlreadyMember    = errors.New("user is already a member of this community")
	ErrNotAMember       = errors.New("user is not a member of this community")
	ErrCapacityExceeded = errors.New("community has reached its member capacity")
)

// Poll errors
var (
	ErrPollExpired = errors.New("poll has expired")
)

// Join request errors
var (
	ErrRequestAlreadyPending = errors.New("a join request is already pending")
	ErrRequestAlreadyClosed  = errors.New("join request has already been reviewed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a resource-not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError wraps a field→message map collected during validation.
// Callers render every problem at once instead of failing on the first.
func NewValidationError(fields map[string]string) error {
	details := make(map[string]interface{}, len(fields))
	for field, message := range fields {
		details[field] = message
	}
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: "validation failed",
		Details: details,
	}
}

// ValidationDetails extracts the field→message map from a validation error,
// or nil when err is not one.
func ValidationDetails(err error) map[string]interface{} {
	var custom *CustomError
	if errors.As(err, &custom) && errors.Is(custom.Err, ErrValidationFailed) {
		return custom.Details
	}
	return nil
}
