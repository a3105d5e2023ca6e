package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// TodoHandler handles todos and subtasks
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos godoc
// @Summary List todos
// @Description Pinned todos first, then newest first, with subtasks embedded
// @Tags todos
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Param pinned query bool false "Filter by pin"
// @Success 200 {array} entities.Todo
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	completed, err := optionalBool(c, "completed")
	if err != nil {
		return err
	}
	pinned, err := optionalBool(c, "pinned")
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListTodos(c.Request().Context(), ports.TodoFilter{Completed: completed, Pinned: pinned})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create todo failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

func (h *TodoHandler) GetTodo(c echo.Context) error {
	id, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}

	todo, err := h.todoService.GetTodo(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update a todo
// @Description Partial update. Set clear_due_date to remove the due date.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body ports.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} entities.Todo
// @Failure 404 {object} ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	id, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}

	var req ports.UpdateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), id, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Todo deleted"})
}

func (h *TodoHandler) AddSubtask(c echo.Context) error {
	todoID, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}

	var req ports.CreateSubtaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	subtask, err := h.todoService.AddSubtask(c.Request().Context(), todoID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, subtask)
}

func (h *TodoHandler) UpdateSubtask(c echo.Context) error {
	todoID, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}
	subtaskID, err := parseID(c, "subtaskId", "subtask")
	if err != nil {
		return err
	}

	var req ports.UpdateSubtaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	subtask, err := h.todoService.UpdateSubtask(c.Request().Context(), todoID, subtaskID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, subtask)
}

func (h *TodoHandler) DeleteSubtask(c echo.Context) error {
	todoID, err := parseID(c, "id", "todo")
	if err != nil {
		return err
	}
	subtaskID, err := parseID(c, "subtaskId", "subtask")
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteSubtask(c.Request().Context(), todoID, subtaskID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Subtask deleted"})
}
