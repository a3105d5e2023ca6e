package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// now is the timestamp written on insert and update
func now() time.Time {
	return time.Now().UTC()
}

// checkAffected maps an update or delete that touched no rows to notFound
func checkAffected(result sql.Result, op string, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// lookupError maps sql.ErrNoRows to notFound and wraps anything else
func lookupError(err error, op string, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
