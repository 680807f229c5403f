// Package errors provides structured error types for skillfield.
//
// Errors carry a machine-readable [Code] alongside a human-readable message,
// so the CLI and the preview server can report failures consistently:
//
//   - INVALID_*: input validation failures (catalogs, flags, config files)
//   - NOT_FOUND_*: missing files or catalog entries
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCatalog, "duplicate skill %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidCatalog) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open catalog %s", path)
//
// The placement engine itself never returns errors; everything around it does.
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidCatalog  Code = "INVALID_CATALOG"
	ErrCodeInvalidSkill    Code = "INVALID_SKILL"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeCache       Code = "CACHE_ERROR"
	ErrCodeConversion  Code = "CONVERSION_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"

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

// Is reports whether any *Error in err's tree has the given code, including
// each entry of a ValidationErrors.
func Is(err error, code Code) bool {
	return errors.Is(err, codeTarget(code))
}

// codeTarget lets errors.Is match an *Error by code alone.
type codeTarget Code

func (c codeTarget) Error() string { return string(c) }

// Is matches targets built by the package-level Is.
func (e *Error) Is(target error) bool {
	c, ok := target.(codeTarget)
	return ok && Code(c) == e.Code
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
// Several validation failures are listed in full.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var v ValidationErrors
	if errors.As(err, &v) && len(v) > 1 {
		return v.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ValidationErrors collects several validation failures into one error.
// A catalog with three bad entries reports all three at once.
type ValidationErrors []*Error

// Error joins the individual messages, one per line.
func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(v))
	for _, e := range v {
		msg += "\n  " + e.Error()
	}
	return msg
}

// Err returns nil when no failures were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	out := make([]error, len(v))
	for i, e := range v {
		out[i] = e
	}
	return out
}
