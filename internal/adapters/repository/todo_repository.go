package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

const (
	todoColumns    = `id, title, description, completed, pinned, due_date, created_at, updated_at`
	subtaskColumns = `id, todo_id, title, completed, created_at, updated_at`
)

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(conn *database.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: conn.DB}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	query := r.db.Rebind(`
		INSERT INTO todos (title, description, completed, pinned, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.Pinned, todo.DueDate, ts, ts,
	).Scan(&todo.ID)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	todo.CreatedAt, todo.UpdatedAt = ts, ts

	if todo.Subtasks == nil {
		todo.Subtasks = []entities.Subtask{}
	}
	return nil
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Todo, error) {
	query := r.db.Rebind(`SELECT ` + todoColumns + ` FROM todos WHERE id = ?`)

	var todo entities.Todo
	if err := r.db.GetContext(ctx, &todo, query, id); err != nil {
		return nil, lookupError(err, "get todo by id", entities.ErrTodoNotFound)
	}

	if err := r.attachSubtasks(ctx, []*entities.Todo{&todo}); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := r.db.Rebind(`
		UPDATE todos
		SET title = ?, description = ?, completed = ?, pinned = ?, due_date = ?, updated_at = ?
		WHERE id = ?
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.Pinned, todo.DueDate, ts, todo.ID,
	).Scan(&todo.ID)
	if err != nil {
		return lookupError(err, "update todo", entities.ErrTodoNotFound)
	}
	todo.UpdatedAt = ts

	return nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id int) error {
	// subtasks go first so the delete holds even without foreign key enforcement
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM subtasks WHERE todo_id = ?`), id); err != nil {
		return fmt.Errorf("delete todo subtasks: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM todos WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return checkAffected(result, "delete todo", entities.ErrTodoNotFound)
}

// List returns pinned todos first, then the newest
func (r *TodoRepositoryImpl) List(ctx context.Context, filter ports.TodoFilter) ([]*entities.Todo, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Pinned != nil {
		where = append(where, "pinned = ?")
		args = append(args, *filter.Pinned)
	}

	query := `SELECT ` + todoColumns + ` FROM todos`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY pinned DESC, created_at DESC, id DESC"

	todos := []*entities.Todo{}
	if err := r.db.SelectContext(ctx, &todos, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	if err := r.attachSubtasks(ctx, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepositoryImpl) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ids := []int{}
	query := r.db.Rebind(`SELECT id FROM todos WHERE completed = ? AND updated_at < ?`)
	if err := r.db.SelectContext(ctx, &ids, query, true, cutoff.UTC()); err != nil {
		return 0, fmt.Errorf("find completed todos: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (r *TodoRepositoryImpl) attachSubtasks(ctx context.Context, todos []*entities.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	byID := make(map[int]*entities.Todo, len(todos))
	ids := make([]int, 0, len(todos))
	for _, t := range todos {
		t.Subtasks = []entities.Subtask{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query, args, err := sqlx.In(`SELECT `+subtaskColumns+` FROM subtasks WHERE todo_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load subtasks: %w", err)
	}

	var subtasks []entities.Subtask
	if err := r.db.SelectContext(ctx, &subtasks, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load subtasks: %w", err)
	}

	for _, s := range subtasks {
		if t, ok := byID[s.TodoID]; ok {
			t.Subtasks = append(t.Subtasks, s)
		}
	}
	return nil
}

func (r *TodoRepositoryImpl) CreateSubtask(ctx context.Context, subtask *entities.Subtask) error {
	query := r.db.Rebind(`
		INSERT INTO subtasks (todo_id, title, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		subtask.TodoID, subtask.Title, subtask.Completed, ts, ts,
	).Scan(&subtask.ID)
	if err != nil {
		return fmt.Errorf("create subtask: %w", err)
	}
	subtask.CreatedAt, subtask.UpdatedAt = ts, ts

	return r.touch(ctx, subtask.TodoID)
}

func (r *TodoRepositoryImpl) GetSubtask(ctx context.Context, todoID, subtaskID int) (*entities.Subtask, error) {
	query := r.db.Rebind(`SELECT ` + subtaskColumns + ` FROM subtasks WHERE id = ? AND todo_id = ?`)

	var subtask entities.Subtask
	if err := r.db.GetContext(ctx, &subtask, query, subtaskID, todoID); err != nil {
		return nil, lookupError(err, "get subtask", entities.ErrSubtaskNotFound)
	}

	return &subtask, nil
}

func (r *TodoRepositoryImpl) UpdateSubtask(ctx context.Context, subtask *entities.Subtask) error {
	query := r.db.Rebind(`
		UPDATE subtasks
		SET title = ?, completed = ?, updated_at = ?
		WHERE id = ? AND todo_id = ?
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		subtask.Title, subtask.Completed, ts, subtask.ID, subtask.TodoID,
	).Scan(&subtask.ID)
	if err != nil {
		return lookupError(err, "update subtask", entities.ErrSubtaskNotFound)
	}
	subtask.UpdatedAt = ts

	return r.touch(ctx, subtask.TodoID)
}

func (r *TodoRepositoryImpl) DeleteSubtask(ctx context.Context, todoID, subtaskID int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM subtasks WHERE id = ? AND todo_id = ?`), subtaskID, todoID)
	if err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}
	if err := checkAffected(result, "delete subtask", entities.ErrSubtaskNotFound); err != nil {
		return err
	}

	return r.touch(ctx, todoID)
}

// touch bumps the parent todo's updated_at after a subtask change
func (r *TodoRepositoryImpl) touch(ctx context.Context, todoID int) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE todos SET updated_at = ? WHERE id = ?`), now(), todoID); err != nil {
		return fmt.Errorf("touch todo: %w", err)
	}
	return nil
}
