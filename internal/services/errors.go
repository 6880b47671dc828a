package services

import "errors"

// Business-rule failures. Handlers translate these into specific HTTP
// statuses and user-facing messages; anything else coming out of a service
// is an infrastructure fault.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingField       = errors.New("you must provide a username and password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmptyURL           = errors.New("class url must not be empty")
	ErrDuplicateClass     = errors.New("class is already registered")
	ErrUserNotFound       = errors.New("user not found")

	// ErrStoreUnavailable wraps database faults so callers can tell a broken
	// store apart from a business-rule rejection. Never retried here; retry
	// is the caller's call.
	ErrStoreUnavailable = errors.New("storage unavailable")
)
