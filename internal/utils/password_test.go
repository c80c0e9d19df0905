package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 100_000

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, salt, err := HashPassword("correct horse battery staple", testIterations)
	require.NoError(t, err)
	assert.Len(t, hash, 32)
	assert.Len(t, salt, 16)

	assert.True(t, VerifyPassword("correct horse battery staple", hash, salt, testIterations))
	assert.False(t, VerifyPassword("wrong password", hash, salt, testIterations))
	assert.False(t, VerifyPassword("", hash, salt, testIterations))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, s1, err := HashPassword("same password", testIterations)
	require.NoError(t, err)
	h2, s2, err := HashPassword("same password", testIterations)
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordIterationMismatch(t *testing.T) {
	hash, salt, err := HashPassword("secret-enough", testIterations)
	require.NoError(t, err)
	// A different iteration count derives a different key.
	assert.False(t, VerifyPassword("secret-enough", hash, salt, testIterations+1))
}
