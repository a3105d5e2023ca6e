package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/logger"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := New(config.DatabaseConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_SQLite(t *testing.T) {
	db := openMemory(t)

	mg, err := NewMigrator(db)
	require.NoError(t, err)

	version, _, err := mg.Version()
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, mg.Up())
	require.NoError(t, mg.Up(), "second run reports no change")

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	for _, table := range []string{"folders", "notes", "timetable_entries", "todos", "subtasks", "conversations", "conversation_messages"} {
		var n int
		require.NoError(t, db.DB.Get(&n, "SELECT COUNT(*) FROM "+table), table)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))

	boom := errors.New("boom")
	err := db.WithTransaction(context.Background(), "insert folder", func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO folders (name, color) VALUES ('a', '#000')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.DB.Get(&n, "SELECT COUNT(*) FROM folders"))
	assert.Zero(t, n)
}

func TestWithTransaction_LogsOutcome(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))

	core, logs := observer.New(zapcore.DebugLevel)
	db.SetLogger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()})

	ctx := context.Background()
	require.NoError(t, db.WithTransaction(ctx, "count folders", func(tx *sqlx.Tx) error {
		var n int
		return tx.Get(&n, "SELECT COUNT(*) FROM folders")
	}))
	require.Error(t, db.WithTransaction(ctx, "bad insert", func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`INSERT INTO no_such_table (x) VALUES (1)`)
		return err
	}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, "Database query executed", entries[0].Message)
	assert.Equal(t, "count folders", entries[0].ContextMap()["query"])
	assert.Equal(t, "database", entries[0].ContextMap()["component"])

	assert.Equal(t, "Database query failed", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "bad insert", entries[1].ContextMap()["query"])
	assert.Contains(t, entries[1].ContextMap()["error"], "no_such_table")
}

func TestHealthCheck(t *testing.T) {
	db := openMemory(t)
	assert.NoError(t, db.HealthCheck())
	assert.Equal(t, "sqlite3", db.GetConnectionInfo()["driver"])
}
