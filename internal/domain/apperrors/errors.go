// Package apperrors defines the closed set of domain error variants.
// Every failure a use case can return carries one of these codes; the
// transport layer maps codes to status codes and never inspects messages.
package apperrors

import "errors"

// Code is the stable machine-readable tag of a domain error.
type Code string

const (
	CodeUserNotFound Code = "USER_NOT_FOUND"
	CodeEmailExists  Code = "EMAIL_EXISTS"
	CodeEmailInUse   Code = "EMAIL_IN_USE"
	CodeInvalidEmail Code = "INVALID_EMAIL"

	// CodeUnknown is the fallback for errors that did not originate in the
	// domain (wiring faults, panics recovered upstream).
	CodeUnknown Code = "UNKNOWN_ERROR"
)

// Error is a tagged domain error. Email and UserID carry the offending
// values when relevant; Message is human-readable and safe to surface.
type Error struct {
	Code    Code
	Message string
	Email   string
	UserID  string
}

func (e *Error) Error() string { return e.Message }

// Is matches by code, so errors.Is(err, ErrEmailExists) works for variants
// built by the constructors below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Canonical variants, usable as errors.Is targets.
var (
	ErrUserNotFound = &Error{Code: CodeUserNotFound, Message: "User not found"}
	ErrEmailExists  = &Error{Code: CodeEmailExists, Message: "User with this email already exists"}
	ErrEmailInUse   = &Error{Code: CodeEmailInUse, Message: "Email already in use"}
	ErrInvalidEmail = &Error{Code: CodeInvalidEmail, Message: "Invalid email format"}
)

func UserNotFound(id string) *Error {
	return &Error{Code: CodeUserNotFound, Message: ErrUserNotFound.Message, UserID: id}
}

func EmailExists(email string) *Error {
	return &Error{Code: CodeEmailExists, Message: ErrEmailExists.Message, Email: email}
}

func EmailInUse(email string) *Error {
	return &Error{Code: CodeEmailInUse, Message: ErrEmailInUse.Message, Email: email}
}

func InvalidEmail(email string) *Error {
	return &Error{Code: CodeInvalidEmail, Message: ErrInvalidEmail.Message, Email: email}
}

// CodeOf extracts the code from err, falling back to CodeUnknown for
// anything outside the closed set.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
