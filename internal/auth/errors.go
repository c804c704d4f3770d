package auth

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidEmail       Code = "invalid-email"
	CodeMissingPassword    Code = "missing-password"
	CodeWeakPassword       Code = "weak-password"
	CodeEmailInUse         Code = "email-already-in-use"
	CodeInvalidCredentials Code = "invalid-credential"
	CodeTooManyRequests    Code = "too-many-requests"
	CodeNetwork            Code = "network-request-failed"
	CodeUnknown            Code = "unknown"
)

const SignOutFailed = "Could not sign out. Please try again."

// Error is a provider failure tagged with a Code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf returns the Code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// FriendlyError maps an auth failure to the message shown to the user.
func FriendlyError(err error) string {
	switch CodeOf(err) {
	case CodeInvalidEmail:
		return "Please enter a valid email address."
	case CodeMissingPassword:
		return "Please enter your password."
	case CodeWeakPassword:
		return "Password is too weak. Use at least 6 characters."
	case CodeEmailInUse:
		return "This email is already registered. Try signing in."
	case CodeInvalidCredentials:
		return "Invalid credentials."
	case CodeTooManyRequests:
		return "Too many attempts. Please wait a moment and try again."
	case CodeNetwork:
		return "Network error. Check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
