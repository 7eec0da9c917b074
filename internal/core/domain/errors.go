package domain

import "errors"

var (
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("inactive user")

	// ErrProviderUnavailable marks upstream model failures (unreachable,
	// non-2xx, quota exceeded, timeout). Retryable by the caller.
	ErrProviderUnavailable = errors.New("model provider unavailable")
)
