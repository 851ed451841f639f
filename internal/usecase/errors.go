package usecase

import "errors"

// Usecase errors are wrapped with %w and translated to HTTP statuses by the
// httpapi layer.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
