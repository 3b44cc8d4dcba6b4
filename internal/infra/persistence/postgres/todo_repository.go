package postgres

import (
	"context"

	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/domain/repository"
	"doable/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements the domain.TodoRepository interface using GORM.
// Every query carries the owner scope so rows never leak across users.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// FindActiveByOwner returns the owner's non-deleted todos, newest created first.
func (repo *todoRepository) FindActiveByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	var todoModels []*model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("created_at DESC").
		Find(&todoModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list active todos")
	}

	return toTodoDomainList(todoModels), nil
}

// FindDeletedByOwner returns the owner's soft-deleted todos ordered by
// deletion time, most recent first. updated_at is bumped by the soft delete,
// so it doubles as the deletion timestamp.
func (repo *todoRepository) FindDeletedByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	var todoModels []*model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, true).
		Order("updated_at DESC").
		Find(&todoModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list deleted todos")
	}

	return toTodoDomainList(todoModels), nil
}

// Create persists a new todo and fills the store-assigned id and timestamps.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Create(todoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create todo")
	}

	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// FindByID retrieves a single non-deleted todo within the owner scope.
func (repo *todoRepository) FindByID(ctx context.Context, id, ownerID int64) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		First(&todoM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo by id")
	}

	return toTodoDomain(&todoM), nil
}

// UpdateCompletion flips the completed flag on a visible, owned row. The
// affected count is the only signal: 0 covers missing, deleted, and
// foreign-owned alike.
func (repo *todoRepository) UpdateCompletion(ctx context.Context, id int64, completed bool, ownerID int64) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		Update("completed", completed)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to update todo completion")
	}

	return result.RowsAffected, nil
}

// SoftDelete marks a visible, owned row as deleted. GORM bumps updated_at,
// which the deleted-history view orders by.
func (repo *todoRepository) SoftDelete(ctx context.Context, id, ownerID int64) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to soft delete todo")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toTodoDomain converts a GORM TodoModel to a domain Todo entity.
func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:        data.ID,
		Text:      data.Text,
		Priority:  entity.Priority(data.Priority),
		Completed: data.Completed,
		IsDeleted: data.IsDeleted,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toTodoDomainList(data []*model.TodoModel) []*entity.Todo {
	todos := make([]*entity.Todo, 0, len(data))
	for _, todoM := range data {
		todos = append(todos, toTodoDomain(todoM))
	}

	return todos
}

// fromTodoDomain converts a domain Todo entity to a GORM TodoModel.
func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:        data.ID,
		Text:      data.Text,
		Priority:  string(data.Priority),
		Completed: data.Completed,
		IsDeleted: data.IsDeleted,
		OwnerID:   data.OwnerID,
	}
}
