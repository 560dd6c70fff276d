// Package session generates identifiers for planning-and-execution
// sessions, grounded on the domain stack's github.com/google/uuid
// dependency.
package session

import "github.com/google/uuid"

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}
