package forum

import "github.com/google/uuid"

// NewKey generates a record identifier: a random 128-bit value in canonical
// UUID text form. Collision probability is negligible at this scale.
func NewKey() string {
	return uuid.NewString()
}
