package errors

import (
	"fmt"
)

// ErrorCode classifies failures surfaced by the review services.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates authentication failure.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the requested entity does not exist or is not
	// visible to the caller.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeStoreUnavailable indicates the backing store cannot be reached.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrCodeConflict indicates a concurrent modification lost the race.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ServiceError is a structured error carrying a stable code across the
// service and router layers.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *ServiceError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnauthorized, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeNotFound, Message: msg}
}

// StoreUnavailable creates a store unavailable error.
func StoreUnavailable(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeStoreUnavailable, Message: msg, Cause: cause}
}

// Conflict creates a conflict error.
func Conflict(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeConflict, Message: msg, Cause: cause}
}

// Internal creates an internal error.
func Internal(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *ServiceError {
	return &ServiceError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ServiceError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Code
	}
	return defaultCode
}
