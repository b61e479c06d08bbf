// Package domainerrors defines the coded errors that cross module boundaries.
//
// Services return these so callers can distinguish outcomes without string
// matching; the HTTP layer maps codes to status codes in one place.
package domainerrors

import "errors"

// Code classifies a domain failure.
type Code string

const (
	// CodeInsufficientFunds is returned when a creation payment does not
	// match the required card fee.
	CodeInsufficientFunds Code = "insufficient_funds"
	// CodeNotOwner is returned when a caller attempts to mutate a card it
	// does not own.
	CodeNotOwner Code = "not_owner"
	// CodeNotFound is returned when a referenced card does not exist.
	CodeNotFound Code = "not_found"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New returns a coded error with a human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in domain logic.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to an HTTP status code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInsufficientFunds:
		return 402
	case CodeNotOwner:
		return 403
	case CodeNotFound:
		return 404
	case CodeBadRequest:
		return 400
	case CodeUnauthorized:
		return 401
	default:
		return 500
	}
}
