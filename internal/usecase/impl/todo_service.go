package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "doable/internal/delivery/context"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/domain/repository"
	"doable/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for todoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListActive returns the owner's visible todos, newest first.
func (srv *todoService) ListActive(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	todos, err := srv.todoRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Int64("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list active todos")
	}

	return todos, nil
}

// ListDeleted returns the owner's soft-deleted todos, most recently deleted first.
func (srv *todoService) ListDeleted(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	todos, err := srv.todoRepo.FindDeletedByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list deleted todos", slog.Int64("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list deleted todos")
	}

	return todos, nil
}

// Create validates and stores a new todo. Text is trimmed, and an unknown
// priority silently becomes medium rather than an error.
func (srv *todoService) Create(ctx context.Context, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domainerrors.ErrTodoTextRequired
	}

	newTodo := &entity.Todo{
		Text:     text,
		Priority: entity.NormalizePriority(input.Priority),
		OwnerID:  input.OwnerID,
	}

	if err := srv.todoRepo.Create(ctx, newTodo); err != nil {
		srv.log(ctx).Error("Failed to create todo", slog.Int64("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Int64("todoID", newTodo.ID), slog.Int64("ownerID", input.OwnerID))

	return newTodo, nil
}

// SetCompletion updates the completed flag on an owned, visible todo and
// returns the updated row. An affected count of zero means the todo is
// missing, deleted, or owned by someone else; all three read the same.
func (srv *todoService) SetCompletion(ctx context.Context, input *usecase.SetCompletionInput) (*entity.Todo, error) {
	affected, err := srv.todoRepo.UpdateCompletion(ctx, input.TodoID, input.Completed, input.OwnerID)
	if err != nil {
		srv.log(ctx).Error("Failed to update todo", slog.Int64("todoID", input.TodoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update todo completion")
	}

	if affected == 0 {
		return nil, domainerrors.ErrTodoNotFound
	}

	updated, err := srv.todoRepo.FindByID(ctx, input.TodoID, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			// The row was deleted between the update and the read back.
			return nil, domainerrors.ErrTodoNotFound
		}

		srv.log(ctx).Error("Failed to read back todo", slog.Int64("todoID", input.TodoID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to read back updated todo")
	}

	return updated, nil
}

// SoftDelete marks an owned, visible todo as deleted. A second delete of the
// same todo reports not found, soft deletion is terminal.
func (srv *todoService) SoftDelete(ctx context.Context, ownerID, todoID int64) error {
	affected, err := srv.todoRepo.SoftDelete(ctx, todoID, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to delete todo", slog.Int64("todoID", todoID), slog.Any("error", err))

		return errors.Wrap(err, "failed to soft delete todo")
	}

	if affected == 0 {
		return domainerrors.ErrTodoAlreadyDeleted
	}

	srv.log(ctx).Debug("Todo deleted", slog.Int64("todoID", todoID), slog.Int64("ownerID", ownerID))

	return nil
}
