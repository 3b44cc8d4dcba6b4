// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"doable/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Username string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated or newly created user.
type AuthOutput struct {
	User *entity.User
}

// SessionOutput returns the raw session token handed to the browser and its
// expiry. Only a hash of the token is ever persisted.
type SessionOutput struct {
	Token     string
	ExpiresAt time.Time
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	IssueSession(ctx context.Context, userID int64) (*SessionOutput, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	RevokeSession(ctx context.Context, token string) error
}
