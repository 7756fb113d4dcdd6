package errors

import "errors"

var (
	// ErrNotFound is returned when a booking or option is not found
	ErrNotFound = errors.New("appointment record not found")

	// ErrInvalidID is returned when an ID format is invalid
	ErrInvalidID = errors.New("invalid appointment ID format")

	// ErrDuplicateBooking is returned when a booking already exists for the
	// same (appointment_date, service, email) triple
	ErrDuplicateBooking = errors.New("booking already exists")
)
