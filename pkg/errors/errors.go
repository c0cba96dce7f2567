package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Junction errors
	ErrInvalidPath         ErrorCode = "INVALID_PATH"
	ErrWin32               ErrorCode = "WIN32"
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Runfiles errors
	ErrRunfilesDiscovery ErrorCode = "RUNFILES_DISCOVERY"
	ErrManifestRead      ErrorCode = "MANIFEST_READ"
)

// RunlinkError represents a structured error with code and details
type RunlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RunlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RunlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RunlinkError) Is(target error) bool {
	var targetErr *RunlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RunlinkError with the given code and message
func New(code ErrorCode, message string) *RunlinkError {
	return &RunlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RunlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RunlinkError {
	return &RunlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RunlinkError
func Wrap(err error, code ErrorCode, message string) *RunlinkError {
	if err == nil {
		return nil
	}
	return &RunlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RunlinkError {
	if err == nil {
		return nil
	}
	return &RunlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// NewWin32 creates an ErrWin32 error recording the failing Win32 API, the
// path it was called on, and the raw system error, so diagnostics carry the
// same information the OS reported.
func NewWin32(api, path string, err error) *RunlinkError {
	return Wrapf(err, ErrWin32, "%s failed for %q", api, path).
		WithDetail("api", api).
		WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *RunlinkError) WithDetail(key string, value interface{}) *RunlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rerr *RunlinkError
	if errors.As(err, &rerr) {
		return rerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RunlinkError
func GetErrorCode(err error) ErrorCode {
	var rerr *RunlinkError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ErrUnknown
}
