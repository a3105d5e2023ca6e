package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

const folderColumns = `
	f.id, f.name, f.color, f.created_at, f.updated_at,
	(SELECT COUNT(*) FROM notes n WHERE n.folder_id = f.id) AS note_count`

// FolderRepositoryImpl implements the FolderRepository interface
type FolderRepositoryImpl struct {
	db   *sqlx.DB
	conn *database.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(conn *database.DB) ports.FolderRepository {
	return &FolderRepositoryImpl{db: conn.DB, conn: conn}
}

func (r *FolderRepositoryImpl) Create(ctx context.Context, folder *entities.Folder) error {
	query := r.db.Rebind(`
		INSERT INTO folders (name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query, folder.Name, folder.Color, ts, ts).
		Scan(&folder.ID)
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	folder.CreatedAt, folder.UpdatedAt = ts, ts

	return nil
}

func (r *FolderRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Folder, error) {
	query := r.db.Rebind(`SELECT ` + folderColumns + ` FROM folders f WHERE f.id = ?`)

	var folder entities.Folder
	if err := r.db.GetContext(ctx, &folder, query, id); err != nil {
		return nil, lookupError(err, "get folder by id", entities.ErrFolderNotFound)
	}

	return &folder, nil
}

func (r *FolderRepositoryImpl) Update(ctx context.Context, folder *entities.Folder) error {
	query := r.db.Rebind(`
		UPDATE folders
		SET name = ?, color = ?, updated_at = ?
		WHERE id = ?
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query, folder.Name, folder.Color, ts, folder.ID).
		Scan(&folder.ID)
	if err != nil {
		return lookupError(err, "update folder", entities.ErrFolderNotFound)
	}
	folder.UpdatedAt = ts

	return nil
}

// Delete removes the folder's notes and then the folder in one transaction
func (r *FolderRepositoryImpl) Delete(ctx context.Context, id int) error {
	return r.conn.WithTransaction(ctx, "delete folder", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM notes WHERE folder_id = ?`), id); err != nil {
			return fmt.Errorf("delete folder notes: %w", err)
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM folders WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		return checkAffected(result, "delete folder", entities.ErrFolderNotFound)
	})
}

func (r *FolderRepositoryImpl) List(ctx context.Context) ([]*entities.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders f ORDER BY LOWER(f.name), f.id`

	folders := []*entities.Folder{}
	if err := r.db.SelectContext(ctx, &folders, query); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return folders, nil
}

func (r *FolderRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM folders`); err != nil {
		return 0, fmt.Errorf("count folders: %w", err)
	}
	return n, nil
}
