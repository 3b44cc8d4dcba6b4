package usecase

import (
	"context"

	"doable/internal/domain/entity"
)

// --- Input DTOs ---

// CreateTodoInput defines the data required to create a todo. Priority is the
// raw client string; unknown values fall back to medium.
type CreateTodoInput struct {
	OwnerID  int64
	Text     string
	Priority string
}

// SetCompletionInput defines the data required to toggle a todo's completion.
type SetCompletionInput struct {
	OwnerID   int64
	TodoID    int64
	Completed bool
}

// TodoUsecase defines the interface for todo list operations. Every method is
// scoped to an owner so one user can never touch another's rows.
type TodoUsecase interface {
	ListActive(ctx context.Context, ownerID int64) ([]*entity.Todo, error)
	ListDeleted(ctx context.Context, ownerID int64) ([]*entity.Todo, error)
	Create(ctx context.Context, input *CreateTodoInput) (*entity.Todo, error)
	SetCompletion(ctx context.Context, input *SetCompletionInput) (*entity.Todo, error)
	SoftDelete(ctx context.Context, ownerID, todoID int64) error
}
