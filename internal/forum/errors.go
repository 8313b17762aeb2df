package forum

import "errors"

var (
	// ErrConflict is returned when an insert would duplicate a unique
	// field (user email, thread name).
	ErrConflict = errors.New("agora: already exists")

	// ErrUnauthorized is returned when a user lookup finds nothing or an
	// operation is attempted by someone other than the record's author.
	ErrUnauthorized = errors.New("agora: unauthorized")

	// ErrNotFound is returned when a requested page is out of range or a
	// post to delete does not exist.
	ErrNotFound = errors.New("agora: not found")
)
