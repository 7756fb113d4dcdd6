package errors

import "errors"

var (
	// ErrNotFound is returned when a product is not found by ID
	ErrNotFound = errors.New("product not found")

	// ErrInvalidID is returned when an ID format is invalid
	ErrInvalidID = errors.New("invalid product ID format")
)
