package utils // package utils provides hashing and token helpers shared by the services

import (
	"crypto/rand"    // secure salt generation
	"crypto/sha256"  // hash function for the PBKDF2 key derivation
	"crypto/subtle"  // constant-time comparison for password verification
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen = 16 // bytes of random salt per password
	keyLen  = 32 // bytes of derived key stored as the hash
)

// HashPassword derives a salted PBKDF2-SHA256 hash for a plain password.
// The iteration count comes from configuration and must be at least 100000.
// It returns the derived key and the freshly generated salt.
func HashPassword(plain string, iterations int) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, err
	}
	hash = pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return hash, salt, nil
}

// VerifyPassword re-derives the key from the candidate password and compares
// it against the stored hash in constant time. Iterations must match the
// value used when the hash was created.
func VerifyPassword(plain string, hash, salt []byte, iterations int) bool {
	test := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(test, hash) == 1
}
