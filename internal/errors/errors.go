package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG"
	ErrFetch  = "FETCH"

	// Fetch failure kinds. All of them collapse into a DOWN server; only
	// ErrNotFound is surfaced to the user as a notice.
	ErrNotFound  = "NOT_FOUND"
	ErrNetwork   = "NETWORK"
	ErrHTTP      = "HTTP"
	ErrMalformed = "MALFORMED"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrFetch code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrFetch,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var btErr *Error
	if errors.As(err, &btErr) {
		return btErr.Code == code
	}
	return false
}

// Code returns the code of the outermost structured Error in err's chain,
// or "" if there is none.
func Code(err error) string {
	var btErr *Error
	if errors.As(err, &btErr) {
		return btErr.Code
	}
	return ""
}

// Summary returns a single-line rendering of err suitable for a log line
// or a narrow card: the message followed by the cause, if any.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var btErr *Error
	if !errors.As(err, &btErr) {
		return strings.TrimSpace(err.Error())
	}
	if btErr.Cause == nil {
		return btErr.Message
	}
	return btErr.Message + ": " + strings.TrimSpace(btErr.Cause.Error())
}
