package errors

import "errors"

var (
	// ErrNotFound is returned when a user is not found
	ErrNotFound = errors.New("user not found")

	// ErrInvalidID is returned when an ID format is invalid
	ErrInvalidID = errors.New("invalid user ID format")

	// ErrDuplicateEmail is returned when a user with the same email exists
	ErrDuplicateEmail = errors.New("user email already registered")
)
