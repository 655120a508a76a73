package services

import (
	"database/sql"
	"testing"

	"github.com/shubham2799/BlogApp/internal/database"
)

// newTestDB opens a migrated in-memory database. The pool is pinned to a
// single connection so every statement sees the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
