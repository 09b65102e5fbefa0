package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Valid reports whether s looks like an identifier produced by UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
