package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewID returns a 24-character lowercase hex identifier (12 random bytes).
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(b)
}

// ValidID reports whether s is a well-formed 24-character hex identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
