// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"doable/config"
	deliverycontext "doable/internal/delivery/context"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/domain/repository"
	"doable/internal/domain/service"
	"doable/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 3

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      service.PasswordHasher
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Hasher      service.PasswordHasher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionTTL := config.DefaultSessionTTL
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.TTL > 0 {
		sessionTTL = params.Config.Session.TTL
	}

	return &authService{
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		sessionTTL:  sessionTTL,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a new account. The username is trimmed before any check and
// stored trimmed; the comparison against existing names is case sensitive.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domainerrors.ErrUsernameEmpty
	}

	if input.Password == "" {
		return nil, domainerrors.ErrPasswordRequired
	}

	if len(input.Password) < minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	newUser := &entity.User{
		Username:       username,
		PasswordDigest: srv.hasher.Hash(input.Password),
	}

	// The users.username UNIQUE constraint is the arbiter here, not a prior
	// existence check, so concurrent signups race safely.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.log(ctx).Warn("Signup rejected, username taken", slog.String("username", username))

			return nil, domainerrors.ErrUsernameTaken
		}

		srv.log(ctx).Error("Failed to create user", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during signup")
	}

	srv.log(ctx).Info("Account created", slog.Int64("userID", newUser.ID), slog.String("username", username))

	return &usecase.AuthOutput{User: newUser}, nil
}

// Login verifies credentials. Unknown username and wrong password are
// indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	digest := srv.hasher.Hash(input.Password)

	user, err := srv.userRepo.FindByCredentials(ctx, username, digest)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", username))

			return nil, domainerrors.ErrInvalidCredentials
		}

		srv.log(ctx).Error("Failed to look up credentials", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by credentials")
	}

	srv.log(ctx).Debug("User logged in", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{User: user}, nil
}

// IssueSession mints an opaque session token for the user and stores only its
// hash. The raw token goes into the cookie and is never persisted.
func (srv *authService) IssueSession(ctx context.Context, userID int64) (*usecase.SessionOutput, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(srv.sessionTTL)

	newSession := &entity.Session{
		UserID:    userID,
		TokenHash: srv.hasher.Hash(token),
		ExpiresAt: expiresAt,
	}

	if err := srv.sessionRepo.Create(ctx, newSession); err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create session")
	}

	return &usecase.SessionOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves a session token to its user. Unknown, expired and
// orphaned sessions all surface as the same authentication failure.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domainerrors.ErrAuthRequired
	}

	session, err := srv.sessionRepo.FindByTokenHash(ctx, srv.hasher.Hash(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return nil, domainerrors.ErrAuthRequired
		}

		srv.log(ctx).Error("Failed to look up session", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find session by token hash")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAuthRequired
		}

		srv.log(ctx).Error("Failed to load session user", slog.Int64("userID", session.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find session user")
	}

	return user, nil
}

// RevokeSession deletes the session behind the token. Revoking a token that
// no longer maps to a session is not an error, so logout stays idempotent.
func (srv *authService) RevokeSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.hasher.Hash(token))
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
