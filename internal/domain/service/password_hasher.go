// Package service defines domain service interfaces implemented by the infra layer.
package service

// PasswordHasher is the credential hashing contract. The digest is
// deterministic: the same plaintext always yields the same digest, and
// comparison happens by re-hashing, never by recovering the plaintext.
type PasswordHasher interface {
	// Hash returns the storable digest of a plaintext password.
	Hash(password string) string

	// Check reports whether the plaintext hashes to the stored digest.
	Check(password, digest string) bool
}
