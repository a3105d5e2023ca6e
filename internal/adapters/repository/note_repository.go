package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

const noteColumns = `id, title, content, folder_id, model_used, created_at, updated_at`

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(conn *database.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: conn.DB}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entities.Note) error {
	query := r.db.Rebind(`
		INSERT INTO notes (title, content, folder_id, model_used, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.FolderID, note.ModelUsed, ts, ts,
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	note.CreatedAt, note.UpdatedAt = ts, ts

	return nil
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Note, error) {
	query := r.db.Rebind(`SELECT ` + noteColumns + ` FROM notes WHERE id = ?`)

	var note entities.Note
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, lookupError(err, "get note by id", entities.ErrNoteNotFound)
	}

	return &note, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entities.Note) error {
	query := r.db.Rebind(`
		UPDATE notes
		SET title = ?, content = ?, folder_id = ?, updated_at = ?
		WHERE id = ?
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.FolderID, ts, note.ID,
	).Scan(&note.ID)
	if err != nil {
		return lookupError(err, "update note", entities.ErrNoteNotFound)
	}
	note.UpdatedAt = ts

	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return checkAffected(result, "delete note", entities.ErrNoteNotFound)
}

// List returns notes most recently updated first
func (r *NoteRepositoryImpl) List(ctx context.Context, filter ports.NoteFilter) ([]*entities.Note, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.FolderID != nil {
		where = append(where, "folder_id = ?")
		args = append(args, *filter.FolderID)
	}
	if len(filter.FolderIDs) > 0 {
		where = append(where, "folder_id IN (?)")
		args = append(args, filter.FolderIDs)
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := []*entities.Note{}
	if err := r.db.SelectContext(ctx, &notes, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the query case-insensitively as a plain substring of the
// title or content
func (r *NoteRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]*entities.Note, error) {
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
	q := r.db.Rebind(`
		SELECT ` + noteColumns + `
		FROM notes
		WHERE LOWER(title) LIKE LOWER(?) ESCAPE '\'
		   OR LOWER(content) LIKE LOWER(?) ESCAPE '\'
		ORDER BY updated_at DESC, id DESC
		LIMIT ?`)

	notes := []*entities.Note{}
	if err := r.db.SelectContext(ctx, &notes, q, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	return notes, nil
}
