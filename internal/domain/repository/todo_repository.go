package repository

import (
	"context"
	"errors"

	"doable/internal/domain/entity"
)

// ErrTodoNotFound is returned when a scoped lookup matches no visible row.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines todo persistence. Every operation takes the acting
// user's id as a mandatory scope and filters by it; a row that is missing,
// soft-deleted, or owned by another user is indistinguishable from absent.
type TodoRepository interface {
	// FindActiveByOwner returns non-deleted todos, newest created first.
	FindActiveByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error)

	// FindDeletedByOwner returns soft-deleted todos ordered by deletion time
	// (updated_at descending).
	FindDeletedByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error)

	// Create persists a new todo and fills the store-assigned id and timestamps.
	Create(ctx context.Context, todo *entity.Todo) error

	// FindByID retrieves a single non-deleted todo within the owner scope.
	FindByID(ctx context.Context, id, ownerID int64) (*entity.Todo, error)

	// UpdateCompletion sets the completed flag on a non-deleted, owned row and
	// returns the number of rows affected (0 or 1).
	UpdateCompletion(ctx context.Context, id int64, completed bool, ownerID int64) (int64, error)

	// SoftDelete marks a non-deleted, owned row as deleted and returns the
	// number of rows affected (0 or 1). The transition is terminal.
	SoftDelete(ctx context.Context, id, ownerID int64) (int64, error)
}
