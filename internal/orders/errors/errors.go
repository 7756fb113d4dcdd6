package errors

import "errors"

var (
	// ErrNotFound is returned when an order is not found by ID
	ErrNotFound = errors.New("order not found")

	// ErrInvalidID is returned when an ID format is invalid
	ErrInvalidID = errors.New("invalid order ID format")

	// ErrLineNotFound is returned when an order holds no line for the
	// requested product
	ErrLineNotFound = errors.New("order line not found")
)
