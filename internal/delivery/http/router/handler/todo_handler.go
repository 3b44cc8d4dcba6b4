package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"doable/internal/delivery/http/middleware"
	"doable/internal/delivery/http/response"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/infra/metrics"
	"doable/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoHandler holds dependencies for todo endpoints. Every endpoint runs
// behind the session middleware, so the current user is always present.
type TodoHandler struct {
	uc        usecase.TodoUsecase
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, collector *metrics.Collector, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:        uc,
		collector: collector,
		logger:    logger,
	}
}

type createTodoRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// updateTodoRequest uses a pointer so a missing completed field and a
// non-boolean one both fail, never coercing truthy values.
type updateTodoRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// List returns the current user's active todos.
func (h *TodoHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	todos, err := h.uc.ListActive(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, todos)
}

// ListDeleted returns the current user's soft-deleted todos.
func (h *TodoHandler) ListDeleted(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	todos, err := h.uc.ListDeleted(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, todos)
}

// Create adds a todo for the current user.
func (h *TodoHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	var input createTodoRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrTodoTextRequired
	}

	todo, err := h.uc.Create(c.Request().Context(), &usecase.CreateTodoInput{
		OwnerID:  user.ID,
		Text:     input.Text,
		Priority: input.Priority,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.collector.RecordTodoCreated()

	return c.JSON(http.StatusCreated, todo)
}

// Update sets the completion flag on one of the current user's todos.
func (h *TodoHandler) Update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	todoID, err := parseTodoID(c)
	if err != nil {
		return err
	}

	var input updateTodoRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrCompletedNotBoolean
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrCompletedNotBoolean
	}

	todo, err := h.uc.SetCompletion(c.Request().Context(), &usecase.SetCompletionInput{
		OwnerID:   user.ID,
		TodoID:    todoID,
		Completed: *input.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, todo)
}

// Delete soft-deletes one of the current user's todos.
func (h *TodoHandler) Delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	todoID, err := parseTodoID(c)
	if err != nil {
		return err
	}

	if err := h.uc.SoftDelete(c.Request().Context(), user.ID, todoID); err != nil {
		return errors.WithStack(err)
	}

	h.collector.RecordTodoDeleted()

	return c.JSON(http.StatusOK, response.DeleteResult{
		Message: "Todo deleted successfully",
		ID:      todoID,
	})
}

func parseTodoID(c echo.Context) (int64, error) {
	todoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrInvalidTodoID
	}

	return todoID, nil
}
