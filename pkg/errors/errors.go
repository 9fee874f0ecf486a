// Package errors provides structured error types for the Node Runner application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library surface
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - TRANSPORT_ERROR: Token envelope failures (base64, compression, decoding)
//   - UNKNOWN_*: Snapshot references that cannot be resolved
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownKind, "no node kind registered as %q", kind)
//	if errors.Is(err, errors.ErrCodeUnknownKind) {
//	    // Handle unknown kind
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "inflate token payload")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidToken Code = "INVALID_TOKEN"
	ErrCodeInvalidKinds Code = "INVALID_KINDS_FILE"
	ErrCodeNoSelection  Code = "NO_SELECTION"
	ErrCodeNoTarget     Code = "NO_TARGET"

	// Transport envelope errors (fatal to a decode call)
	ErrCodeTransport Code = "TRANSPORT_ERROR"

	// Snapshot resolution errors (per-item, non-fatal during decode)
	ErrCodeUnknownKind   Code = "UNKNOWN_KIND"
	ErrCodeUnknownNode   Code = "UNKNOWN_NODE"
	ErrCodeUnknownSocket Code = "UNKNOWN_SOCKET"
	ErrCodeUnknownAsset  Code = "UNKNOWN_ASSET"

	// Attribute encoding errors
	ErrCodeUnsupportedValue Code = "UNSUPPORTED_VALUE"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
