package repository

import (
	"context"
	"errors"
	"time"

	"doable/internal/domain/entity"
)

// Session lookup errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionRepository persists the server side of the cookie session boundary.
// Only token hashes are stored.
type SessionRepository interface {
	// Create persists a new session and fills the store-assigned id.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by its token hash. Expired sessions
	// are reported as ErrSessionExpired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes a session, ending it.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes every session whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
