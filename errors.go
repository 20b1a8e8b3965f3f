package pyhover

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// EUNRESOLVABLE is a valid terminal outcome, not a failure: the context did
// not identify a documented symbol. EUNAVAILABLE means the symbol resolved
// but its content could not be retrieved; hosts are expected to render the
// two differently.
const (
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNRESOLVABLE = "unresolvable"
	EUNAVAILABLE  = "unavailable"
	EINTERNAL     = "internal"
)

// Error represents an application-specific error. Application errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to surface to hosts.
	Message string

	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pyhover: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pyhover: %s", e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf constructs an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapErrorf constructs an Error that wraps an underlying cause.
func WrapErrorf(err error, code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrorCode returns the code of the first Error in err's chain, or EINTERNAL
// for non-application errors. Returns the empty string for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the first Error in err's chain, or a
// generic message for non-application errors. Returns the empty string for nil.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
