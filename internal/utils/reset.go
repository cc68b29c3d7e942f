package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateResetToken returns an opaque password-reset secret and its SHA-256
// digest. Only the digest is ever persisted; the plaintext goes out in the
// reset email and cannot be reconstructed from storage.
func GenerateResetToken() (plain, hash string, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(b)
	return plain, HashResetToken(plain), nil
}

// HashResetToken digests a presented plaintext token for lookup against the
// stored hash.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
