package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wordtrack/internal/database/migrations"
	"wordtrack/internal/database/sqlc"
	"wordtrack/internal/wt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the wt.Database interface using SQLite.
// Store methods called directly on it run in autocommit mode; InTransaction
// binds the same methods to a single transaction.
type SQLiteDatabase struct {
	*queryStore
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		queryStore: &queryStore{queries: sqlc.New(db)},
		db:         db,
		path:       path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		queryStore: &queryStore{queries: sqlc.New(db)},
		db:         db,
		path:       "",
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so keep exactly one.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	return db, nil
}

// InTransaction runs fn against a Store bound to one transaction. The
// transaction commits only if fn returns nil.
func (s *SQLiteDatabase) InTransaction(fn func(wt.Store) error) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %w", wt.ErrStore, err)
	}
	defer tx.Rollback()

	if err := fn(&queryStore{queries: s.queries.WithTx(tx)}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", wt.ErrStore, err)
	}
	return nil
}

// Sync operation tracking

func (s *SQLiteDatabase) CreateSyncOperation(operation string, parameters string) (*sqlc.SyncOperation, error) {
	startedAt := time.Now()
	id, err := s.queries.InsertSyncOperation(context.Background(), sqlc.InsertSyncOperationParams{
		StartedAt:  startedAt,
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("creating sync operation: %w", err)
	}
	return &sqlc.SyncOperation{
		ID:         id,
		StartedAt:  startedAt,
		Operation:  operation,
		Parameters: parameters,
		Status:     "running",
	}, nil
}

func (s *SQLiteDatabase) FinishSyncOperation(id int64, status string) error {
	err := s.queries.UpdateSyncOperationFinished(context.Background(), sqlc.UpdateSyncOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing sync operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListSyncOperations(limit int) ([]*sqlc.SyncOperation, error) {
	ops, err := s.queries.GetSyncOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing sync operations: %w", err)
	}
	return toPtrs(ops), nil
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate applies all pending migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements wt.Database interface
var _ wt.Database = (*SQLiteDatabase)(nil)
