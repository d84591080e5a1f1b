// Package id provides UUID-based identifiers for all entities.
package id

import (
	"github.com/google/uuid"
)

// ID is a UUID-based identifier
type ID = uuid.UUID

// Nil is the zero ID
var Nil = uuid.Nil

// New generates a new UUIDv7 (time-ordered, good for database indexes)
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the entropy source fails, fall back to v4
		return uuid.New()
	}
	return id
}

// Parse parses a string into an ID
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse parses a string into an ID, panics on error.
// Use only in tests and static initialization.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil checks if the ID is the zero value
func IsNil(id ID) bool {
	return id == uuid.Nil
}
