package session

import "github.com/google/uuid"

// NewID returns a fresh unguessable session identifier. Version-4 UUIDs are
// drawn from crypto/rand; collision probability over a store's lifetime is
// cryptographically negligible.
func NewID() string {
	return uuid.NewString()
}
