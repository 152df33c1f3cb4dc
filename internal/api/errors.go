package api

import (
	"errors"
	"fmt"
)

type Code string

const (
	// CodeValidation covers malformed or empty input, rejected locally
	// or by the backend.
	CodeValidation Code = "VALIDATION"
	// CodeNetwork covers transport failures before any response arrived.
	CodeNetwork Code = "NETWORK"
	// CodeNotFound covers references to messages or users the backend
	// does not know.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized covers rejected credentials and wrong-role access.
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Error is what every Client method returns on failure. Message is safe
// to show to the user as-is.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("api: %s (%s): %v", e.Message, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func codeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsValidation(err error) bool   { return codeOf(err) == CodeValidation }
func IsNetwork(err error) bool      { return codeOf(err) == CodeNetwork }
func IsNotFound(err error) bool     { return codeOf(err) == CodeNotFound }
func IsUnauthorized(err error) bool { return codeOf(err) == CodeUnauthorized }

// UserMessage extracts the displayable text from a Client error,
// falling back to the raw error string.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
