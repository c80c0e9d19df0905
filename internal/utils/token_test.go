package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTokenShape(t *testing.T) {
	seen := map[string]bool{}
	re := regexp.MustCompile(`^[0-9A-F]{48}$`)
	for i := 0; i < 50; i++ {
		tok, err := NewSessionToken()
		require.NoError(t, err)
		assert.Regexp(t, re, tok)
		assert.False(t, seen[tok], "token repeated")
		seen[tok] = true
	}
}

func TestNewBookingRefShape(t *testing.T) {
	re := regexp.MustCompile(`^B[0-9A-F]{8}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, NewBookingRef())
	}
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "S001", SeatLabel(1))
	assert.Equal(t, "S042", SeatLabel(42))
	assert.Equal(t, "S999", SeatLabel(999))
}
