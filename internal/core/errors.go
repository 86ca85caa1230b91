// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Provider data errors. NoProviderData and NoPriceData route to the
	// fallback record and are never surfaced to quote callers.
	ErrNoProviderData = &Error{Code: "NO_PROVIDER_DATA", Message: "no provider data"}
	ErrNoPriceData    = &Error{Code: "NO_PRICE_DATA", Message: "no price data"}

	// History has no fallback series; an empty series fails the request.
	ErrNoHistoryData = &Error{Code: "NO_HISTORY_DATA", Message: "no historical data available"}

	// Request errors
	ErrBadRequest = &Error{Code: "BAD_REQUEST", Message: "bad request"}

	// Transport errors
	ErrUpstream = &Error{Code: "UPSTREAM_UNAVAILABLE", Message: "upstream provider unavailable"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
