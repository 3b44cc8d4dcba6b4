package postgres

import (
	"context"
	"time"

	"doable/internal/domain/entity"
	"doable/internal/domain/repository"
	"doable/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface using GORM.
// Only token hashes are stored, never the raw cookie value.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session record.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByTokenHash looks up a session by its token hash. An expired row is
// reported as ErrSessionExpired so callers can distinguish stale cookies
// from unknown ones.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token hash")
	}

	session := toSessionDomain(&sessionM)
	if session.Expired(time.Now()) {
		return nil, repository.ErrSessionExpired
	}

	return session, nil
}

// DeleteByTokenHash removes a single session, ending it server side.
func (repo *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete session")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteExpired purges every session past its expiry and reports how many
// rows were removed. Used by the background sweep.
func (repo *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
	}
}
