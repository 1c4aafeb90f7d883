package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for a value that violates its shape.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// InvalidConfig creates a new AppError for node configuration outside documented bounds.
func InvalidConfig(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration for %s: %s", field, reason),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// ServiceUnavailable creates a new AppError for a capability missing
// from the execution context or temporarily unreachable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s service is not available.", service),
		Retryable: true,
		Details:   map[string]any{"service": service},
	}
}

// Timeout creates a new AppError for an operation that took too long.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The operation took too long. Please try again.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited(service string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("The %s service rejected the request due to rate limiting.", service),
		Retryable: true,
		Details:   map[string]any{"service": service},
	}
}

// ExecutionFailed creates a new AppError for a failed node execution attempt.
func ExecutionFailed(nodeType string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExecutionFailed, Message: fmt.Sprintf("Execution of node %s failed.", nodeType),
		Retryable: true,
		Details:   map[string]any{"node_type": nodeType},
		Cause:     cause,
	}
}

// Exhausted creates a new AppError reporting that every permitted retry
// attempt failed. The message format is stable; callers parse it.
func Exhausted(attempts int, lastError string) *AppError {
	return &AppError{
		Code: ErrCodeRetryExhausted, Message: fmt.Sprintf("Failed after %d attempts. Last error: %s", attempts, lastError),
		Retryable: false,
		Details:   map[string]any{"attempts": attempts, "last_error": lastError},
	}
}

// NotFound creates a new AppError for an unregistered node type.
func NotFound(nodeType string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("Node type %q is not registered.", nodeType),
		Retryable: false,
		Details:   map[string]any{"node_type": nodeType},
	}
}

// AlreadyExists creates a new AppError for a duplicate node type registration.
func AlreadyExists(nodeType string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("Node type %q is already registered.", nodeType),
		Retryable: false,
		Details:   map[string]any{"node_type": nodeType},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
