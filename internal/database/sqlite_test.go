package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"wordtrack/internal/database/sqlc"
	"wordtrack/internal/wt"
)

// newTestDB creates a new in-memory database with schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if _, err := db.db.Exec(Schema); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

var testTime = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func root() sql.NullString { return sql.NullString{} }

func parent(id string) sql.NullString { return sql.NullString{String: id, Valid: true} }

// createTestTree creates a root folder "root" holding the document "doc-1".
func createTestTree(t *testing.T, db *SQLiteDatabase) {
	t.Helper()
	if _, err := db.CreateFolder("root", "Novel", root(), testTime); err != nil {
		t.Fatalf("CreateFolder() error = %v", err)
	}
	if _, err := db.CreateDocument("doc-1", "Chapter 1", "root", testTime); err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
}

func TestSQLiteDatabase_Folders(t *testing.T) {
	t.Run("returns nil when folder not found", func(t *testing.T) {
		db := newTestDB(t)

		f, err := db.FindFolder("missing")
		if err != nil {
			t.Fatalf("FindFolder() error = %v", err)
		}
		if f != nil {
			t.Errorf("FindFolder() = %v, want nil", f)
		}
	})

	t.Run("creates and finds folder", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateFolder("root", "Novel", root(), testTime); err != nil {
			t.Fatalf("CreateFolder() error = %v", err)
		}
		if _, err := db.CreateFolder("f-1", "Drafts", parent("root"), testTime); err != nil {
			t.Fatalf("CreateFolder() error = %v", err)
		}

		found, err := db.FindFolder("f-1")
		if err != nil {
			t.Fatalf("FindFolder() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindFolder() returned nil, want folder")
		}
		if found.Name != "Drafts" {
			t.Errorf("Name = %q, want %q", found.Name, "Drafts")
		}
		if found.ParentID != parent("root") {
			t.Errorf("ParentID = %v, want root", found.ParentID)
		}
		if !found.LastSynced.Equal(testTime) {
			t.Errorf("LastSynced = %v, want %v", found.LastSynced, testTime)
		}
	})

	t.Run("fails on duplicate id", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateFolder("root", "Novel", root(), testTime); err != nil {
			t.Fatalf("first CreateFolder() error = %v", err)
		}
		if _, err := db.CreateFolder("root", "Novel", root(), testTime); err == nil {
			t.Error("second CreateFolder() expected error for duplicate id")
		}
	})

	t.Run("fails for unknown parent", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateFolder("f-1", "Drafts", parent("missing"), testTime); err == nil {
			t.Error("CreateFolder() expected foreign key error")
		}
	})

	t.Run("updates name and parent", func(t *testing.T) {
		db := newTestDB(t)
		db.CreateFolder("root", "Novel", root(), testTime)
		db.CreateFolder("a", "A", parent("root"), testTime)
		db.CreateFolder("b", "B", parent("root"), testTime)

		later := testTime.Add(time.Hour)
		if err := db.UpdateFolder("b", "B renamed", parent("a"), later); err != nil {
			t.Fatalf("UpdateFolder() error = %v", err)
		}

		f, _ := db.FindFolder("b")
		if f.Name != "B renamed" || f.ParentID != parent("a") {
			t.Errorf("folder = %+v, want renamed and moved under a", f)
		}
		if !f.LastSynced.Equal(later) {
			t.Errorf("LastSynced = %v, want %v", f.LastSynced, later)
		}
	})

	t.Run("lists folders by name", func(t *testing.T) {
		db := newTestDB(t)
		db.CreateFolder("root", "Novel", root(), testTime)
		db.CreateFolder("z", "Appendix", parent("root"), testTime)

		folders, err := db.ListFolders()
		if err != nil {
			t.Fatalf("ListFolders() error = %v", err)
		}
		if len(folders) != 2 {
			t.Fatalf("got %d folders, want 2", len(folders))
		}
		if folders[0].Name != "Appendix" || folders[1].Name != "Novel" {
			t.Errorf("order = [%s %s], want [Appendix Novel]", folders[0].Name, folders[1].Name)
		}
	})
}

func TestSQLiteDatabase_Documents(t *testing.T) {
	t.Run("returns nil when document not found", func(t *testing.T) {
		db := newTestDB(t)

		d, err := db.FindDocument("missing")
		if err != nil {
			t.Fatalf("FindDocument() error = %v", err)
		}
		if d != nil {
			t.Errorf("FindDocument() = %v, want nil", d)
		}
	})

	t.Run("new document has no marker and zero words", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		d, err := db.FindDocument("doc-1")
		if err != nil {
			t.Fatalf("FindDocument() error = %v", err)
		}
		if d == nil {
			t.Fatal("FindDocument() returned nil, want document")
		}
		if d.TotalWords != 0 {
			t.Errorf("TotalWords = %d, want 0", d.TotalWords)
		}
		if d.LastRevisionID.Valid {
			t.Errorf("LastRevisionID = %v, want NULL", d.LastRevisionID)
		}
	})

	t.Run("updates location", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)
		db.CreateFolder("f-2", "Part Two", parent("root"), testTime)

		if err := db.UpdateDocumentLocation("doc-1", "Chapter One", "f-2"); err != nil {
			t.Fatalf("UpdateDocumentLocation() error = %v", err)
		}

		d, _ := db.FindDocument("doc-1")
		if d.Name != "Chapter One" || d.FolderID != "f-2" {
			t.Errorf("document = %+v, want renamed and moved to f-2", d)
		}
	})

	t.Run("updates revision and count", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		if err := db.UpdateDocumentRevision("doc-1", parent("v7"), 120); err != nil {
			t.Fatalf("UpdateDocumentRevision() error = %v", err)
		}

		d, _ := db.FindDocument("doc-1")
		if d.LastRevisionID != parent("v7") {
			t.Errorf("LastRevisionID = %v, want v7", d.LastRevisionID)
		}
		if d.TotalWords != 120 {
			t.Errorf("TotalWords = %d, want 120", d.TotalWords)
		}

		// An unavailable marker is stored as NULL.
		if err := db.UpdateDocumentRevision("doc-1", sql.NullString{}, 121); err != nil {
			t.Fatalf("UpdateDocumentRevision() error = %v", err)
		}
		d, _ = db.FindDocument("doc-1")
		if d.LastRevisionID.Valid {
			t.Errorf("LastRevisionID = %v, want NULL", d.LastRevisionID)
		}
	})

	t.Run("touch sets last synced", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		later := testTime.Add(24 * time.Hour)
		if err := db.TouchDocument("doc-1", later); err != nil {
			t.Fatalf("TouchDocument() error = %v", err)
		}
		d, _ := db.FindDocument("doc-1")
		if !d.LastSynced.Equal(later) {
			t.Errorf("LastSynced = %v, want %v", d.LastSynced, later)
		}
	})

	t.Run("fails for unknown folder", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateDocument("doc-1", "Chapter 1", "missing", testTime); err == nil {
			t.Error("CreateDocument() expected foreign key error")
		}
	})
}

func TestSQLiteDatabase_DailySnapshots(t *testing.T) {
	t.Run("returns nil when snapshot not found", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		snap, err := db.FindDailySnapshot("doc-1", "2024-01-15")
		if err != nil {
			t.Fatalf("FindDailySnapshot() error = %v", err)
		}
		if snap != nil {
			t.Errorf("FindDailySnapshot() = %v, want nil", snap)
		}
	})

	t.Run("create, update and find", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		created, err := db.CreateDailySnapshot("doc-1", "2024-01-15", 3, 3, testTime)
		if err != nil {
			t.Fatalf("CreateDailySnapshot() error = %v", err)
		}
		if created.ID == 0 {
			t.Error("snapshot ID should be non-zero")
		}

		if err := db.UpdateDailySnapshot(created.ID, 6, 6); err != nil {
			t.Fatalf("UpdateDailySnapshot() error = %v", err)
		}

		found, err := db.FindDailySnapshot("doc-1", "2024-01-15")
		if err != nil {
			t.Fatalf("FindDailySnapshot() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindDailySnapshot() returned nil, want snapshot")
		}
		if found.TotalWords != 6 || found.NetAdded != 6 {
			t.Errorf("snapshot = %+v, want total 6 net 6", found)
		}
	})

	t.Run("one snapshot per document and date", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)

		if _, err := db.CreateDailySnapshot("doc-1", "2024-01-15", 3, 3, testTime); err != nil {
			t.Fatalf("CreateDailySnapshot() error = %v", err)
		}
		if _, err := db.CreateDailySnapshot("doc-1", "2024-01-15", 4, 1, testTime); err == nil {
			t.Error("second CreateDailySnapshot() expected unique constraint error")
		}
	})

	t.Run("lists snapshots since date", func(t *testing.T) {
		db := newTestDB(t)
		createTestTree(t, db)
		for _, date := range []string{"2024-01-13", "2024-01-14", "2024-01-15"} {
			if _, err := db.CreateDailySnapshot("doc-1", date, 1, 1, testTime); err != nil {
				t.Fatalf("CreateDailySnapshot(%s) error = %v", date, err)
			}
		}

		snaps, err := db.ListDailySnapshotsSince("2024-01-14")
		if err != nil {
			t.Fatalf("ListDailySnapshotsSince() error = %v", err)
		}
		if len(snaps) != 2 {
			t.Fatalf("got %d snapshots, want 2", len(snaps))
		}
		if snaps[0].Date != "2024-01-14" || snaps[1].Date != "2024-01-15" {
			t.Errorf("dates = [%s %s], want [2024-01-14 2024-01-15]", snaps[0].Date, snaps[1].Date)
		}
	})
}

func TestSQLiteDatabase_RevisionEvents(t *testing.T) {
	db := newTestDB(t)
	createTestTree(t, db)

	first := &sqlc.RevisionEvent{
		DocumentID: "doc-1", RevisionID: parent("v1"), Timestamp: testTime,
		WordsAdded: 5, WordsDeleted: 2, NetChange: 3,
	}
	second := &sqlc.RevisionEvent{
		DocumentID: "doc-1", RevisionID: parent("v2"), Timestamp: testTime.Add(time.Hour),
		WordsAdded: 5, WordsDeleted: 2, NetChange: 3,
	}
	for _, e := range []*sqlc.RevisionEvent{first, second} {
		if err := db.AppendRevisionEvent(e); err != nil {
			t.Fatalf("AppendRevisionEvent() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("AppendRevisionEvent() did not set ID")
		}
	}

	events, err := db.ListRevisionEvents("doc-1", 10)
	if err != nil {
		t.Fatalf("ListRevisionEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first
	if events[0].ID != second.ID {
		t.Errorf("expected newest first: got ID %d, want %d", events[0].ID, second.ID)
	}

	limited, _ := db.ListRevisionEvents("doc-1", 1)
	if len(limited) != 1 {
		t.Errorf("got %d events with limit 1, want 1", len(limited))
	}
}

func TestSQLiteDatabase_InTransaction(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		db := newTestDB(t)

		err := db.InTransaction(func(s wt.Store) error {
			_, err := s.CreateFolder("root", "Novel", root(), testTime)
			return err
		})
		if err != nil {
			t.Fatalf("InTransaction() error = %v", err)
		}

		f, _ := db.FindFolder("root")
		if f == nil {
			t.Error("folder created in committed transaction is missing")
		}
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db := newTestDB(t)
		boom := errors.New("boom")

		err := db.InTransaction(func(s wt.Store) error {
			if _, err := s.CreateFolder("root", "Novel", root(), testTime); err != nil {
				return err
			}
			if _, err := s.CreateDocument("doc-1", "Chapter 1", "root", testTime); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("InTransaction() error = %v, want boom", err)
		}

		if f, _ := db.FindFolder("root"); f != nil {
			t.Error("folder from rolled back transaction is visible")
		}
		if d, _ := db.FindDocument("doc-1"); d != nil {
			t.Error("document from rolled back transaction is visible")
		}
	})

	t.Run("reads its own writes", func(t *testing.T) {
		db := newTestDB(t)

		err := db.InTransaction(func(s wt.Store) error {
			if _, err := s.CreateFolder("root", "Novel", root(), testTime); err != nil {
				return err
			}
			f, err := s.FindFolder("root")
			if err != nil {
				return err
			}
			if f == nil {
				t.Error("FindFolder() inside transaction returned nil")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("InTransaction() error = %v", err)
		}
	})
}

func TestSQLiteDatabase_SyncOperations(t *testing.T) {
	t.Run("create and list operations", func(t *testing.T) {
		db := newTestDB(t)

		op1, err := db.CreateSyncOperation("sync", "root")
		if err != nil {
			t.Fatalf("CreateSyncOperation() error = %v", err)
		}
		if op1.ID == 0 {
			t.Error("operation ID should be non-zero")
		}
		if op1.Status != "running" {
			t.Errorf("Status = %q, want %q", op1.Status, "running")
		}

		op2, err := db.CreateSyncOperation("db backup", "/tmp/x.db")
		if err != nil {
			t.Fatalf("CreateSyncOperation() error = %v", err)
		}

		ops, err := db.ListSyncOperations(10)
		if err != nil {
			t.Fatalf("ListSyncOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("got %d operations, want 2", len(ops))
		}

		// Newest first
		if ops[0].ID != op2.ID {
			t.Errorf("expected newest first: got ID %d, want %d", ops[0].ID, op2.ID)
		}
	})

	t.Run("finish operation sets status and time", func(t *testing.T) {
		db := newTestDB(t)

		op, _ := db.CreateSyncOperation("sync", "")
		if err := db.FinishSyncOperation(op.ID, "success"); err != nil {
			t.Fatalf("FinishSyncOperation() error = %v", err)
		}

		ops, _ := db.ListSyncOperations(1)
		if ops[0].Status != "success" {
			t.Errorf("Status = %q, want %q", ops[0].Status, "success")
		}
		if !ops[0].FinishedAt.Valid {
			t.Error("FinishedAt should be set")
		}
	})
}

func TestSQLiteDatabase_BackupTo(t *testing.T) {
	db := newTestDB(t)
	createTestTree(t, db)

	destPath := filepath.Join(t.TempDir(), "backup.db")
	if err := db.BackupTo(destPath); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	// Open the backup and verify it has the data
	backup, err := NewSQLiteDatabase(destPath)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer backup.Close()

	doc, err := backup.FindDocument("doc-1")
	if err != nil {
		t.Fatalf("FindDocument() error = %v", err)
	}
	if doc == nil {
		t.Error("backup does not contain the document")
	}
}

func TestSQLiteDatabase_CheckMigrations(t *testing.T) {
	t.Run("fails on DB without migrations applied", func(t *testing.T) {
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteDatabase() error = %v", err)
		}
		defer db.Close()

		if err := db.CheckMigrations(); err == nil {
			t.Error("CheckMigrations() expected error for missing schema")
		}
	})

	t.Run("passes after Migrate", func(t *testing.T) {
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteDatabase() error = %v", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		if err := db.CheckMigrations(); err != nil {
			t.Errorf("CheckMigrations() error = %v", err)
		}
	})
}
