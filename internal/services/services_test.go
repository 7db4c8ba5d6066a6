package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/database"
)

// newTestDB opens a fresh in-memory database with the schema applied.
// The pool is capped at one connection so every query sees the same
// in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}
