package domain

import "errors"

var (
	// ErrNotLoggedIn is returned before any backend call when no user is signed in.
	ErrNotLoggedIn = errors.New("must be logged in")
	ErrNotFound    = errors.New("not found")
	// ErrBackend wraps every failure reported by the data backend.
	ErrBackend = errors.New("backend error")
)
