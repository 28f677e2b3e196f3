package store

import "errors"

// Every operation returns its own error instead of parking a shared
// last-error message; callers can tell exactly which call failed and why.
var (
	ErrNotAuthenticated = errors.New("no authenticated user")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidCount     = errors.New("count must be at least 1")
)
