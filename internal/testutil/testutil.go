package testutil

import (
	"database/sql"
	"testing"

	"gorm.io/gorm"

	"userService/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name must be unique per test; the DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache lets every pooled connection see the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenInMemoryGorm is OpenInMemoryDB wrapped in a gorm session.
func OpenInMemoryGorm(t *testing.T, name string) *gorm.DB {
	t.Helper()
	g, err := db.NewGorm(OpenInMemoryDB(t, name), false)
	if err != nil {
		t.Fatalf("open test gorm: %v", err)
	}
	return g
}
