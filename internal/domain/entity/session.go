package entity

import "time"

// Session ties an opaque cookie token to a user. Only the SHA-256 hash of the
// token is stored; the raw value exists solely in the client cookie.
type Session struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
