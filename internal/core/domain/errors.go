package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// loginFallbackMessage is shown when the server's error payload carries no
// usable message.
const loginFallbackMessage = "Login failed"

// AuthError is the failure result of a login attempt. Message is
// display-ready: either the message extracted from the server's error payload
// or a generic fallback.
type AuthError struct {
	Message string
	cause   error
}

// NewAuthError builds an AuthError from a server-supplied message, falling
// back to a generic one when msg is empty.
func NewAuthError(msg string, cause error) *AuthError {
	if msg == "" {
		msg = loginFallbackMessage
	}
	return &AuthError{Message: msg, cause: cause}
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.cause }
