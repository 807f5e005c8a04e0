package service

import (
	"errors"
	"strings"
)

// Error kinds. Every client error returned by a service operation matches
// exactly one of them with [errors.Is]; anything else is an internal failure.
var (
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrAuth          = errors.New("authentication error")
	ErrNotFound      = errors.New("not found")
	ErrExpired       = errors.New("expired")
	ErrEmailDelivery = errors.New("email delivery error")
)

var (
	ErrEmailAlreadyInUse   = newError(ErrConflict, "This email is already in use")
	ErrInvalidCredentials  = newError(ErrAuth, "Invalid email or password")
	ErrNotAuthorized       = newError(ErrAuth, "Not authorized, please login")
	ErrWrongPassword       = newError(ErrAuth, "Password is incorrect, please enter the right password")
	ErrUserNotFound        = newError(ErrNotFound, "User not found")
	ErrResetTokenNotFound  = newError(ErrNotFound, "Invalid or expired token")
	ErrResetTokenExpired   = newError(ErrExpired, "Invalid or expired token")
	ErrEmailNotSent        = newError(ErrEmailDelivery, "Email not sent, please try again")
	ErrProductNotFound     = newError(ErrNotFound, "Product not found")
	ErrProductAccessDenied = newError(ErrAuth, "User not authorized")
	ErrImageUploadDisabled = newError(ErrValidation, "Image upload is not available")

	ErrImageUpload           = errors.New("failed to upload image")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Error is a service error of a known kind. Its message is meant for API
// clients.
type Error struct {
	kind  error
	msg   string
	cause error
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// validationError turns a validator failure into an [ErrValidation] error
// carrying the validator's message.
func validationError(cause error) *Error {
	msg := cause.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return &Error{kind: ErrValidation, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	return e.msg
}

// Kind returns the error kind e belongs to.
func (e *Error) Kind() error {
	return e.kind
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}
