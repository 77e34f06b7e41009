package wt

import (
	"database/sql"
	"time"

	"wordtrack/internal/database/sqlc"
)

// Store provides point lookups and mutations for the persisted tree and its
// word count aggregates. Lookups return (nil, nil) when the row does not exist.
type Store interface {
	// Folder operations

	// FindFolder returns the folder with the given provider ID.
	FindFolder(id string) (*sqlc.Folder, error)

	// CreateFolder records a newly seen folder. parentID is invalid for the root.
	CreateFolder(id, name string, parentID sql.NullString, syncedAt time.Time) (*sqlc.Folder, error)

	// UpdateFolder sets a folder's name and parent and refreshes its last-synced time.
	UpdateFolder(id, name string, parentID sql.NullString, syncedAt time.Time) error

	// ListFolders returns every known folder ordered by name.
	ListFolders() ([]*sqlc.Folder, error)

	// Document operations

	// FindDocument returns the document with the given provider ID.
	FindDocument(id string) (*sqlc.Document, error)

	// CreateDocument records a newly seen document with no change marker and zero words.
	CreateDocument(id, name, folderID string, syncedAt time.Time) (*sqlc.Document, error)

	// UpdateDocumentLocation renames and/or moves a document.
	UpdateDocumentLocation(id, name, folderID string) error

	// UpdateDocumentRevision stores the latest change marker and word count.
	UpdateDocumentRevision(id string, revisionID sql.NullString, totalWords int64) error

	// TouchDocument refreshes a document's last-synced time.
	TouchDocument(id string, syncedAt time.Time) error

	// ListDocuments returns every known document ordered by name.
	ListDocuments() ([]*sqlc.Document, error)

	// DailySnapshot operations

	// FindDailySnapshot returns the snapshot for a document on a date (YYYY-MM-DD).
	FindDailySnapshot(docID, date string) (*sqlc.DailySnapshot, error)

	// CreateDailySnapshot inserts the first snapshot of a document for a date.
	CreateDailySnapshot(docID, date string, totalWords, netAdded int64, createdAt time.Time) (*sqlc.DailySnapshot, error)

	// UpdateDailySnapshot overwrites the total and net delta of an existing snapshot.
	UpdateDailySnapshot(id, totalWords, netAdded int64) error

	// ListDailySnapshotsSince returns all snapshots dated on or after date.
	ListDailySnapshotsSince(date string) ([]*sqlc.DailySnapshot, error)

	// RevisionEvent operations. Events are append-only.

	// AppendRevisionEvent records a computed diff.
	AppendRevisionEvent(event *sqlc.RevisionEvent) error

	// ListRevisionEvents returns a document's most recent events, newest first.
	ListRevisionEvents(docID string, limit int) ([]*sqlc.RevisionEvent, error)
}

// Database is the persisted store plus transaction and lifecycle management.
type Database interface {
	Store

	// InTransaction runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTransaction(fn func(Store) error) error

	// Sync operation tracking

	// CreateSyncOperation records the start of a CLI operation.
	CreateSyncOperation(operation, parameters string) (*sqlc.SyncOperation, error)

	// FinishSyncOperation marks an operation finished with the given status.
	FinishSyncOperation(id int64, status string) error

	// ListSyncOperations returns the most recent operations, newest first.
	ListSyncOperations(limit int) ([]*sqlc.SyncOperation, error)

	// CheckMigrations verifies the schema is up to date.
	CheckMigrations() error

	// Migrate applies pending schema migrations.
	Migrate() error

	// BackupTo writes a consistent copy of the database to destPath.
	BackupTo(destPath string) error

	// Close closes the database connection.
	Close() error
}
