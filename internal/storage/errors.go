package storage

import "errors"

// Storage errors.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptState is returned when a stored report state cannot be
	// decompressed, parsed or validated.
	ErrCorruptState = errors.New("corrupt report state")
)
