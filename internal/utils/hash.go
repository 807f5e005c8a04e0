package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenEntropy is the number of random bytes in a raw reset token
// (before hex encoding and before the user ID suffix).
const resetTokenEntropy = 32

// HashPassword returns the bcrypt digest of password computed with the given
// cost. The digest embeds its own random salt, so hashing the same password
// twice yields different strings.
//
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// [bcrypt.DefaultCost].
//
// Example usage:
//
//	digest, err := utils.HashPassword("secret1", 10)
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// ComparePassword reports whether password matches the bcrypt digest.
// The comparison re-hashes password with the salt embedded in digest and
// compares in constant time.
func ComparePassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// GenerateResetToken returns a fresh raw password-reset token: 32 random
// bytes, hex encoded, followed by userID.
//
// The raw token must only be delivered to the user; persist [HashToken] of it.
func GenerateResetToken(userID string) (string, error) {
	buf := make([]byte, resetTokenEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating reset token: %w", err)
	}

	return hex.EncodeToString(buf) + userID, nil
}

// HashToken computes the SHA-256 digest of a raw token and returns it as a
// hex-encoded string. The function is deterministic so a stored digest can be
// looked up from the raw value presented by the user.
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
