package impl

import (
	"context"
	"testing"
	"time"

	"doable/config"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest(userRepo *fakeUserRepo, sessionRepo *fakeSessionRepo, cfg *config.Config) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Hasher:      fakeHasher{},
		Config:      cfg,
		Logger:      testLogger(),
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates account with trimmed username", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), nil)

		out, err := svc.Signup(context.Background(), &usecase.SignupInput{
			Username: "  alice  ",
			Password: "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, out.User)

		assert.Equal(t, "alice", out.User.Username)
		assert.NotZero(t, out.User.ID)
		assert.Equal(t, fakeHasher{}.Hash("secret"), out.User.PasswordDigest)
	})

	t.Run("rejects whitespace-only username", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)

		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "   ", Password: "secret"})
		require.ErrorIs(t, err, domainerrors.ErrUsernameEmpty)
	})

	t.Run("rejects missing password before length check", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)

		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice"})
		require.ErrorIs(t, err, domainerrors.ErrPasswordRequired)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)

		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "ab"})
		require.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), nil)

		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "other"})
		require.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	})

	t.Run("username comparison is case sensitive", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), nil)

		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		out, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "Alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "Alice", out.User.Username)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	signup := func(t *testing.T, svc usecase.AuthUsecase, username, password string) {
		t.Helper()
		_, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: username, Password: password})
		require.NoError(t, err)
	}

	t.Run("returns the user for valid credentials", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)
		signup(t, svc, "alice", "secret")

		out, err := svc.Login(context.Background(), &usecase.LoginInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "alice", out.User.Username)
	})

	t.Run("rejects blank credentials", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)

		_, err := svc.Login(context.Background(), &usecase.LoginInput{Username: "alice"})
		require.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

		_, err = svc.Login(context.Background(), &usecase.LoginInput{Password: "secret"})
		require.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)
	})

	t.Run("unknown username and wrong password read the same", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)
		signup(t, svc, "alice", "secret")

		_, unknownErr := svc.Login(context.Background(), &usecase.LoginInput{Username: "bob", Password: "secret"})
		_, wrongErr := svc.Login(context.Background(), &usecase.LoginInput{Username: "alice", Password: "nope"})

		require.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		require.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Sessions(t *testing.T) {
	t.Parallel()

	t.Run("issued token authenticates back to its user", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		sessionRepo := newFakeSessionRepo()
		svc := newAuthServiceForTest(userRepo, sessionRepo, testSessionConfig(time.Hour))

		signedUp, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		session, err := svc.IssueSession(context.Background(), signedUp.User.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

		user, err := svc.Authenticate(context.Background(), session.Token)
		require.NoError(t, err)
		assert.Equal(t, signedUp.User.ID, user.ID)
	})

	t.Run("stores only the token hash", func(t *testing.T) {
		t.Parallel()

		sessionRepo := newFakeSessionRepo()
		svc := newAuthServiceForTest(newFakeUserRepo(), sessionRepo, testSessionConfig(time.Hour))

		session, err := svc.IssueSession(context.Background(), 1)
		require.NoError(t, err)

		_, rawStored := sessionRepo.sessions[session.Token]
		assert.False(t, rawStored)
		_, hashStored := sessionRepo.sessions[fakeHasher{}.Hash(session.Token)]
		assert.True(t, hashStored)
	})

	t.Run("rejects unknown and empty tokens", func(t *testing.T) {
		t.Parallel()

		svc := newAuthServiceForTest(newFakeUserRepo(), newFakeSessionRepo(), nil)

		_, err := svc.Authenticate(context.Background(), "not-a-token")
		require.ErrorIs(t, err, domainerrors.ErrAuthRequired)

		_, err = svc.Authenticate(context.Background(), "")
		require.ErrorIs(t, err, domainerrors.ErrAuthRequired)
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		sessionRepo := newFakeSessionRepo()
		svc := newAuthServiceForTest(userRepo, sessionRepo, testSessionConfig(time.Hour))

		signedUp, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		const token = "stale-token"
		sessionRepo.sessions[fakeHasher{}.Hash(token)] = &entity.Session{
			UserID:    signedUp.User.ID,
			TokenHash: fakeHasher{}.Hash(token),
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		_, err = svc.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, domainerrors.ErrAuthRequired)
	})

	t.Run("revocation ends the session and stays idempotent", func(t *testing.T) {
		t.Parallel()

		userRepo := newFakeUserRepo()
		svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), testSessionConfig(time.Hour))

		signedUp, err := svc.Signup(context.Background(), &usecase.SignupInput{Username: "alice", Password: "secret"})
		require.NoError(t, err)

		session, err := svc.IssueSession(context.Background(), signedUp.User.ID)
		require.NoError(t, err)

		require.NoError(t, svc.RevokeSession(context.Background(), session.Token))

		_, err = svc.Authenticate(context.Background(), session.Token)
		require.ErrorIs(t, err, domainerrors.ErrAuthRequired)

		require.NoError(t, svc.RevokeSession(context.Background(), session.Token))
	})
}
