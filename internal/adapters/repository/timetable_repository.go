package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

const timetableColumns = `id, day, start_time, end_time, subject, type, location, created_at, updated_at`

// TimetableRepositoryImpl implements the TimetableRepository interface
type TimetableRepositoryImpl struct {
	db   *sqlx.DB
	conn *database.DB
}

// NewTimetableRepository creates a new timetable repository
func NewTimetableRepository(conn *database.DB) ports.TimetableRepository {
	return &TimetableRepositoryImpl{db: conn.DB, conn: conn}
}

func (r *TimetableRepositoryImpl) Create(ctx context.Context, entry *entities.TimetableEntry) error {
	return insertTimetableEntry(ctx, r.db, entry)
}

func (r *TimetableRepositoryImpl) CreateBatch(ctx context.Context, entries []*entities.TimetableEntry) error {
	return r.conn.WithTransaction(ctx, "create timetable batch", func(tx *sqlx.Tx) error {
		for _, entry := range entries {
			if err := insertTimetableEntry(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	Rebind(query string) string
}

func insertTimetableEntry(ctx context.Context, q queryRower, entry *entities.TimetableEntry) error {
	query := q.Rebind(`
		INSERT INTO timetable_entries (day, day_index, start_time, end_time, subject, type, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	ts := now()
	err := q.QueryRowContext(ctx, query,
		entry.Day, entry.Day.Index(), entry.StartTime, entry.EndTime,
		entry.Subject, entry.Type, entry.Location, ts, ts,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}
	entry.CreatedAt, entry.UpdatedAt = ts, ts

	return nil
}

func (r *TimetableRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.TimetableEntry, error) {
	query := r.db.Rebind(`SELECT ` + timetableColumns + ` FROM timetable_entries WHERE id = ?`)

	var entry entities.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, lookupError(err, "get timetable entry by id", entities.ErrTimetableNotFound)
	}

	return &entry, nil
}

func (r *TimetableRepositoryImpl) Update(ctx context.Context, entry *entities.TimetableEntry) error {
	query := r.db.Rebind(`
		UPDATE timetable_entries
		SET day = ?, day_index = ?, start_time = ?, end_time = ?, subject = ?, type = ?, location = ?, updated_at = ?
		WHERE id = ?
		RETURNING id`)

	ts := now()
	err := r.db.QueryRowContext(ctx, query,
		entry.Day, entry.Day.Index(), entry.StartTime, entry.EndTime,
		entry.Subject, entry.Type, entry.Location, ts, entry.ID,
	).Scan(&entry.ID)
	if err != nil {
		return lookupError(err, "update timetable entry", entities.ErrTimetableNotFound)
	}
	entry.UpdatedAt = ts

	return nil
}

func (r *TimetableRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM timetable_entries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete timetable entry: %w", err)
	}
	return checkAffected(result, "delete timetable entry", entities.ErrTimetableNotFound)
}

func (r *TimetableRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM timetable_entries`)
	if err != nil {
		return 0, fmt.Errorf("delete timetable: %w", err)
	}
	return result.RowsAffected()
}

func (r *TimetableRepositoryImpl) List(ctx context.Context) ([]*entities.TimetableEntry, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetable_entries ORDER BY day_index, start_time, id`

	entries := []*entities.TimetableEntry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}

	return entries, nil
}

func (r *TimetableRepositoryImpl) ListByDay(ctx context.Context, day entities.Weekday) ([]*entities.TimetableEntry, error) {
	query := r.db.Rebind(`SELECT ` + timetableColumns + ` FROM timetable_entries WHERE day = ? ORDER BY start_time, id`)

	entries := []*entities.TimetableEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, day); err != nil {
		return nil, fmt.Errorf("list timetable entries by day: %w", err)
	}

	return entries, nil
}
