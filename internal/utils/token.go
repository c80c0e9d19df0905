package utils

import (
	"crypto/rand" // secure random bytes for session tokens
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken returns an opaque bearer token: 24 bytes of secure random
// data hex-encoded upper case (48 characters). The token carries no structure;
// validity lives entirely in the user_sessions row.
func NewSessionToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// NewBookingRef returns a human-facing booking reference: the letter B
// followed by the first eight hex characters of a random UUID, upper case.
// References are unique by database constraint; callers regenerate on a
// duplicate-key rejection.
func NewBookingRef() string {
	id := uuid.New()
	return "B" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// SeatLabel formats a 1-based seat index as a cabin label (S001..S999).
// The format caps capacity at 999 seats; aircraft creation enforces the bound.
func SeatLabel(n int) string {
	return fmt.Sprintf("S%03d", n)
}
