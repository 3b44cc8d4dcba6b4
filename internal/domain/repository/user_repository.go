// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"doable/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Users are global, not tenant-scoped, so no scope parameter appears here.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single user by exact username (id and username only).
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByCredentials retrieves a user matching both username and password digest.
	FindByCredentials(ctx context.Context, username, digest string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Create persists a new user. A username collision surfaces as the domain
	// conflict error; the store's uniqueness constraint is the arbiter, not a
	// pre-insert existence check.
	Create(ctx context.Context, user *entity.User) error
}
