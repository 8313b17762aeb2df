package store

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist in its collection.
	ErrNotFound = errors.New("agora: record not found")

	// ErrUnavailable is returned when the underlying store call failed.
	// The SDK error is attached to the chain for logging.
	ErrUnavailable = errors.New("agora: store unavailable")
)
