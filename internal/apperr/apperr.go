package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is a generic sentinel for invalid caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIdentity signals that no user identity could be resolved.
	ErrIdentity = errors.New("identity not resolved")
)
