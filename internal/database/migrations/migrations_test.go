package migrations

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"folders", "documents", "daily_snapshots", "revision_events", "sync_operations", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	err := CheckDBMigrationStatus(db)
	if !errors.Is(err, ErrNoVersion) {
		t.Errorf("CheckDBMigrationStatus() error = %v, want ErrNoVersion", err)
	}
}

func TestCheckDBMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after migration returned error: %v", err)
	}
}

func TestGetStatus(t *testing.T) {
	db := openTestDB(t)

	before, err := GetStatus(db)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if before.Current != 0 || before.UpToDate() {
		t.Errorf("fresh status = %+v, want version 0 and not up to date", before)
	}
	if before.Latest == 0 {
		t.Error("Latest = 0, want at least one embedded migration")
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	after, err := GetStatus(db)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !after.UpToDate() {
		t.Errorf("status after migration = %+v, want up to date", after)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}
	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after double migration returned error: %v", err)
	}
}

func TestForeignKeyConstraints(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// A document must belong to a known folder.
	_, err := db.Exec(`
		INSERT INTO documents (id, name, folder_id, total_words, last_synced)
		VALUES ('doc-1', 'Chapter 1', 'missing-folder', 0, datetime('now'))
	`)
	if err == nil {
		t.Error("Expected foreign key constraint violation, but insert succeeded")
	}
}

func TestSchema_DailySnapshotUnique(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	stmts := []string{
		"INSERT INTO folders (id, name, last_synced) VALUES ('root', 'Root', datetime('now'))",
		"INSERT INTO documents (id, name, folder_id, last_synced) VALUES ('doc-1', 'Chapter 1', 'root', datetime('now'))",
		"INSERT INTO daily_snapshots (document_id, date, total_words, net_added, created_at) VALUES ('doc-1', '2024-01-15', 3, 3, datetime('now'))",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Exec(%q) error = %v", stmt, err)
		}
	}

	_, err := db.Exec("INSERT INTO daily_snapshots (document_id, date, total_words, net_added, created_at) VALUES ('doc-1', '2024-01-15', 4, 1, datetime('now'))")
	if err == nil {
		t.Error("Expected unique constraint violation for duplicate (document, date), but insert succeeded")
	}
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	return db
}
