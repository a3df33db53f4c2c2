// Package errors provides the typed errors returned across utilfee.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput is a rejected command-line value
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing is a malformed document (import or persisted table)
	TypeParsing Type = "PARSING_ERROR"

	// TypeStorage is a failed read or write of the rate table
	TypeStorage Type = "STORAGE_ERROR"

	// TypeConfig is an unreadable or invalid configuration
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal is an encoding failure that should not happen
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound is an unknown period id
	TypeNotFound Type = "NOT_FOUND"
)

// Error carries a category, a message and optionally the underlying cause
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the error has type t
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext attaches a key/value pair and returns e
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Newf creates an error with a formatted message
func Newf(t Type, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error around cause
func Wrap(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// IsType reports whether err, or any error it wraps, is an *Error of type t
func IsType(err error, t Type) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}

func Input(message string) *Error {
	return &Error{Type: TypeInput, Message: message}
}

func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}

// Config wraps a configuration failure; cause may be nil
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// NotFound reports a missing resource, e.g. NotFound("period", id)
func NotFound(resource, id string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resource, id)
}
