package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// TodoService handles todos and their subtasks
type TodoService struct {
	todoRepo ports.TodoRepository
	now      func() time.Time
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// ListTodos returns todos pinned first, then newest first
func (s *TodoService) ListTodos(ctx context.Context, filter ports.TodoFilter) ([]*entities.Todo, error) {
	todos, err := s.todoRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a todo with its subtasks
func (s *TodoService) GetTodo(ctx context.Context, id int) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// CreateTodo creates a new todo
func (s *TodoService) CreateTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	todo := &entities.Todo{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Infow("Todo created", "todo_id", todo.ID, "title", todo.Title)

	return todo, nil
}

// UpdateTodo applies a partial update. ClearDue removes the due date.
func (s *TodoService) UpdateTodo(ctx context.Context, id int, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	if req.Title != nil {
		todo.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Pinned != nil {
		todo.Pinned = *req.Pinned
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.ClearDue {
		todo.DueDate = nil
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Infow("Todo updated", "todo_id", todo.ID, "completed", todo.Completed, "pinned", todo.Pinned)

	return todo, nil
}

// DeleteTodo deletes a todo and its subtasks
func (s *TodoService) DeleteTodo(ctx context.Context, id int) error {
	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Infow("Todo deleted", "todo_id", id)

	return nil
}

// AddSubtask appends a subtask to a todo
func (s *TodoService) AddSubtask(ctx context.Context, todoID int, req ports.CreateSubtaskRequest) (*entities.Subtask, error) {
	if _, err := s.todoRepo.GetByID(ctx, todoID); err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	subtask := &entities.Subtask{
		TodoID: todoID,
		Title:  strings.TrimSpace(req.Title),
	}
	if err := s.todoRepo.CreateSubtask(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	s.logger.Infow("Subtask created", "todo_id", todoID, "subtask_id", subtask.ID)

	return subtask, nil
}

// UpdateSubtask renames or toggles a subtask
func (s *TodoService) UpdateSubtask(ctx context.Context, todoID, subtaskID int, req ports.UpdateSubtaskRequest) (*entities.Subtask, error) {
	subtask, err := s.todoRepo.GetSubtask(ctx, todoID, subtaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtask: %w", err)
	}

	if req.Title != nil {
		subtask.Title = strings.TrimSpace(*req.Title)
	}
	if req.Completed != nil {
		subtask.Completed = *req.Completed
	}

	if err := s.todoRepo.UpdateSubtask(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	return subtask, nil
}

// DeleteSubtask removes a subtask from its todo
func (s *TodoService) DeleteSubtask(ctx context.Context, todoID, subtaskID int) error {
	if err := s.todoRepo.DeleteSubtask(ctx, todoID, subtaskID); err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

// DueOn returns open todos due on the calendar day of t
func (s *TodoService) DueOn(ctx context.Context, t time.Time) ([]*entities.Todo, error) {
	open := false
	todos, err := s.todoRepo.List(ctx, ports.TodoFilter{Completed: &open})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	due := []*entities.Todo{}
	for _, todo := range todos {
		if todo.IsDueOn(t) {
			due = append(due, todo)
		}
	}
	return due, nil
}

// PurgeCompleted deletes completed todos not touched for olderThan.
// A non-positive olderThan disables the purge.
func (s *TodoService) PurgeCompleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, nil
	}

	n, err := s.todoRepo.DeleteCompletedBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to purge completed todos: %w", err)
	}

	if n > 0 {
		s.logger.Infow("Completed todos purged", "deleted", n, "older_than", olderThan.String())
	}

	return n, nil
}
