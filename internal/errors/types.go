package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeUpstream   ErrorType = "upstream"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// BlogError represents a structured error with context
type BlogError struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *BlogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping
func (e *BlogError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a specific type
func (e *BlogError) Is(target error) bool {
	if targetErr, ok := target.(*BlogError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *BlogError) WithContext(key string, value interface{}) *BlogError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new BlogError
func New(errType ErrorType, message string) *BlogError {
	return &BlogError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *BlogError {
	return &BlogError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *BlogError {
	return Wrap(err, errType, fmt.Sprintf(format, args...))
}

// Newf creates a new BlogError with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *BlogError {
	return New(errType, fmt.Sprintf(format, args...))
}

// As finds the first BlogError in err's chain
func As(err error) (*BlogError, bool) {
	var bErr *BlogError
	if stderrors.As(err, &bErr) {
		return bErr, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if bErr, ok := As(err); ok {
		return bErr.Type == errType
	}
	return false
}

// GetType returns the error type, or ErrorTypeInternal if not a BlogError
func GetType(err error) ErrorType {
	if bErr, ok := As(err); ok {
		return bErr.Type
	}
	return ErrorTypeInternal
}

// GetContext returns context information from the error
func GetContext(err error) map[string]interface{} {
	if bErr, ok := As(err); ok {
		return bErr.Context
	}
	return nil
}
