// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"doable/internal/domain/service"
)

// sha256Hasher is a concrete implementation of the PasswordHasher interface
// using an unsalted SHA-256 digest. The scheme is deterministic so login can
// match on the stored digest directly. Changing it would invalidate every
// stored credential, so any migration has to rewrite the users table.
type sha256Hasher struct{}

// NewSHA256Hasher is the constructor for sha256Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewSHA256Hasher() service.PasswordHasher {
	return &sha256Hasher{}
}

// Hash returns the lowercase hex SHA-256 digest of the plaintext.
func (h *sha256Hasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}

// Check compares a plaintext password with a stored digest by re-hashing.
func (h *sha256Hasher) Check(password, digest string) bool {
	rehashed := h.Hash(password)

	return subtle.ConstantTimeCompare([]byte(rehashed), []byte(digest)) == 1
}
