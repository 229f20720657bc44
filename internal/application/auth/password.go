package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of its input.
const bcryptMaxBytes = 72

// passwordInput returns the bytes handed to bcrypt. Secrets longer than bcryptMaxBytes are
// first reduced to base64(sha256(pw)), 44 bytes, so every byte of a long secret still counts.
func passwordInput(pw string) []byte {
	if len(pw) <= bcryptMaxBytes {
		return []byte(pw)
	}
	sum := sha256.Sum256([]byte(pw))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword bcrypt-hashes pw at cost.
func HashPassword(pw string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword(passwordInput(pw), cost)
}

// ComparePassword reports whether pw matches a hash made by HashPassword.
func ComparePassword(hash []byte, pw string) error {
	return bcrypt.CompareHashAndPassword(hash, passwordInput(pw))
}
