package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a request carries no valid principal
	// for an operation that requires one.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the policy denies an action on a task.
	// The API layer renders it the same way as a missing resource so that
	// "absent" and "forbidden" cannot be told apart.
	ErrForbidden = errors.New("operation not permitted")
)
