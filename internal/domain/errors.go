package domain

import "errors"

var (
	// ErrNotFound is returned by point lookups and strict updates that
	// miss their target record.
	ErrNotFound = errors.New("record not found")

	// ErrCarNotFound is returned when a booking operation references a
	// car that does not exist; the whole operation is rolled back.
	ErrCarNotFound = errors.New("car not found")

	// ErrInvalidInput marks validation failures that should surface as
	// a bad request rather than a server error.
	ErrInvalidInput = errors.New("invalid input")
)
