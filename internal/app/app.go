package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"wordtrack/internal/cache"
	"wordtrack/internal/config"
	"wordtrack/internal/database"
	"wordtrack/internal/database/sqlc"
	"wordtrack/internal/encryption"
	"wordtrack/internal/gdrive"
	"wordtrack/internal/wt"
)

// WTApp is the application layer between the CLI and WTService.
// It constructs all dependencies from config, exposes high-level operations
// and manages the DB lifecycle on Close.
type WTApp struct {
	cfg      *config.Config
	db       wt.Database
	cache    wt.SnapshotCache
	service  *wt.WTService
	logger   wt.Logger
	location *time.Location
	op       *SyncOperation
	logFile  io.Closer
}

// NewWTApp creates a WTApp for commands that only read the persisted store.
// operation identifies the CLI command being run (e.g. "progress", "history").
// The caller must call Close when done.
func NewWTApp(cfg *config.Config, operation string) (*WTApp, error) {
	return newWTApp(cfg, operation, nil, nil, os.Stderr)
}

// NewSyncApp creates a WTApp that can also sync: it opens the snapshot cache,
// unlocking it with passphrase when it is encrypted, and connects to Google
// Drive with the saved token.
func NewSyncApp(ctx context.Context, cfg *config.Config, operation string, passphrase *encryption.PassphraseReader) (*WTApp, error) {
	c, err := openCache(cfg, passphrase)
	if err != nil {
		return nil, err
	}

	svc, err := gdrive.NewDriveService(ctx, cfg.Google)
	if err != nil {
		closeCache(c)
		return nil, err
	}
	prov := gdrive.NewDriveProvider(svc, cfg.Google.TokenPath)

	a, err := newWTApp(cfg, operation, prov, c, os.Stderr)
	if err != nil {
		closeCache(c)
		return nil, err
	}
	return a, nil
}

func newWTApp(cfg *config.Config, operation string, prov wt.Provider, c wt.SnapshotCache, stderr io.Writer) (*WTApp, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date (run `wordtrack db migrate`): %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, cfg.LogLevel, stderr)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	svc := wt.NewWTService(db, c, prov, adapter, wt.RealClock{}, wt.UUIDGenerator{},
		wt.WithLocation(loc),
		wt.WithIgnore(wt.NewIgnoreMatcher(cfg.Sync.Ignore)),
	)

	return &WTApp{
		cfg:      cfg,
		db:       db,
		cache:    c,
		service:  svc,
		logger:   adapter,
		location: loc,
		op:       NewSyncOperation(operation, ""),
		logFile:  logFile,
	}, nil
}

// openCache builds the snapshot cache from config. An encrypted cache is
// unlocked before it is returned so that snapshots can be read back.
func openCache(cfg *config.Config, passphrase *encryption.PassphraseReader) (wt.SnapshotCache, error) {
	c, err := cache.NewCacheFromConfig(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot cache: %w", err)
	}
	if !cfg.Cache.Encrypted {
		if err := c.ValidateSetup(); err != nil {
			closeCache(c)
			return nil, fmt.Errorf("snapshot cache not ready: %w", err)
		}
		return c, nil
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		closeCache(c)
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	ec := cache.NewEncryptedCache(c, enc)
	if err := ec.ValidateSetup(); err != nil {
		ec.Close()
		return nil, fmt.Errorf("snapshot cache not ready: %w", err)
	}

	pass, err := passphrase.Read("Passphrase for the snapshot cache: ")
	if err != nil {
		ec.Close()
		return nil, err
	}
	if err := ec.Unlock(pass); err != nil {
		ec.Close()
		return nil, err
	}
	return ec, nil
}

func closeCache(c wt.SnapshotCache) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// persistOperation saves the operation to the database, giving it an auto-increment ID.
// This should only be called for DB-mutating commands.
func (a *WTApp) persistOperation(parameters string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = parameters
	dbOp, err := a.db.CreateSyncOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting sync operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// RootFolderID picks the folder to sync: the argument if given, else the
// configured root.
func (a *WTApp) RootFolderID(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if a.cfg.RootFolderID != "" {
		return a.cfg.RootFolderID, nil
	}
	return "", fmt.Errorf("no root folder: pass FOLDER_ID, set WORDTRACK_ROOT_FOLDER_ID or root_folder_id in the config")
}

// Sync runs one sync of the tree under folderID (or the configured root).
func (a *WTApp) Sync(ctx context.Context, folderID string) (*wt.SyncResult, error) {
	root, err := a.RootFolderID(folderID)
	if err != nil {
		return nil, err
	}
	if err := a.persistOperation(root); err != nil {
		return nil, err
	}
	res, err := a.service.Sync(ctx, root)
	return res, a.op.Fail(err)
}

// Watch syncs immediately and then once per interval until ctx is done.
// Every run is recorded as its own operation. A failed run is reported and
// retried on the next tick.
func (a *WTApp) Watch(ctx context.Context, folderID string, interval time.Duration, report func(*wt.SyncResult, error)) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}
	root, err := a.RootFolderID(folderID)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := a.syncOnce(ctx, root)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			a.logger.Error("scheduled sync failed, retrying next tick", "root", root, "error", err)
		}
		if report != nil {
			report(res, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *WTApp) syncOnce(ctx context.Context, root string) (*wt.SyncResult, error) {
	rec, err := a.db.CreateSyncOperation(a.op.Operation, root)
	if err != nil {
		return nil, fmt.Errorf("persisting sync operation: %w", err)
	}

	op := &SyncOperation{ID: rec.ID, Operation: rec.Operation, Parameters: root, Status: StatusSuccess}
	res, syncErr := a.service.Sync(ctx, root)
	op.Fail(syncErr)

	if err := a.db.FinishSyncOperation(op.ID, op.Status); err != nil && syncErr == nil {
		return res, fmt.Errorf("finishing sync operation: %w", err)
	}
	return res, syncErr
}

// Location is the time zone used for calendar dates.
func (a *WTApp) Location() *time.Location {
	return a.location
}

// GetProgress returns word activity per document and folder since the given time.
func (a *WTApp) GetProgress(since time.Time) ([]wt.ProgressEntry, error) {
	return a.service.GetProgress(since)
}

// GetSummary returns the writing dashboard with a trend of trendDays days.
func (a *WTApp) GetSummary(trendDays int) (*wt.Summary, error) {
	return a.service.GetSummary(trendDays)
}

// GetHistory returns the most recent sync operations.
func (a *WTApp) GetHistory(limit int) ([]*sqlc.SyncOperation, error) {
	return a.service.GetHistory(limit)
}

// GetDocumentLog returns a document and its most recent revision events.
func (a *WTApp) GetDocumentLog(docID string, limit int) (*sqlc.Document, []*sqlc.RevisionEvent, error) {
	return a.service.GetDocumentLog(docID, limit)
}

// GetTree returns the persisted folder tree.
func (a *WTApp) GetTree() ([]*wt.TreeNode, error) {
	return a.service.GetTree()
}

// BackupDatabase writes a consistent copy of the database to destPath.
func (a *WTApp) BackupDatabase(destPath string) error {
	if err := a.persistOperation(destPath); err != nil {
		return err
	}
	if _, err := os.Stat(destPath); err == nil {
		return a.op.Fail(fmt.Errorf("backup destination already exists: %s", destPath))
	}
	return a.op.Fail(a.db.BackupTo(destPath))
}

// Close finalizes the operation and closes all resources.
func (a *WTApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishSyncOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing sync operation: %w", err)
		}
	}

	if a.cache != nil {
		if err := closeCache(a.cache); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing snapshot cache: %w", err)
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// MigrateDatabase applies pending schema migrations to the configured database.
func MigrateDatabase(cfg *config.Config) error {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// CheckDatabase reports whether the configured database schema is current.
func CheckDatabase(cfg *config.Config) error {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	return db.CheckMigrations()
}
