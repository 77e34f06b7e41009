package wt

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// WTService is the orchestration layer that synchronizes a remote document
// tree into the persisted store and answers progress queries for the CLI.
type WTService struct {
	database Database
	cache    SnapshotCache
	provider Provider
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	location *time.Location
	ignore   *IgnoreMatcher
}

// Option configures optional WTService behaviour.
type Option func(*WTService)

// WithLocation sets the time zone used to derive the calendar date of a run.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *WTService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithIgnore skips remote folders and documents matched by m.
func WithIgnore(m *IgnoreMatcher) Option {
	return func(s *WTService) { s.ignore = m }
}

// NewWTService creates a new WTService with the provided dependencies.
// cache and provider may be nil for services that only answer queries.
func NewWTService(database Database, cache SnapshotCache, provider Provider, logger Logger, clock Clock, idgen IDGenerator, opts ...Option) *WTService {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	s := &WTService{
		database: database,
		cache:    cache,
		provider: provider,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncResult summarizes a completed run.
type SyncResult struct {
	RunID      string
	Date       string
	TotalWords int64

	FoldersCreated int
	FoldersUpdated int
	FoldersFailed  int // listing failed; treated as empty

	DocumentsCreated int
	DocumentsMoved   int
	DocumentsDiffed  int
	DocumentsSkipped int // fast path
	DocumentsFailed  int // export or diff failed; left unchanged
}

// SyncTree walks the remote tree under rootFolderID, brings the persisted
// store up to date and returns the total word count of every visited document.
// All relational changes of the run are committed together or not at all.
func (s *WTService) SyncTree(ctx context.Context, rootFolderID string) (int64, error) {
	res, err := s.Sync(ctx, rootFolderID)
	if err != nil {
		return 0, err
	}
	return res.TotalWords, nil
}

// Sync performs the same run as SyncTree and reports what it changed.
func (s *WTService) Sync(ctx context.Context, rootFolderID string) (*SyncResult, error) {
	if rootFolderID == "" {
		return nil, fmt.Errorf("root folder id is required")
	}
	if s.provider == nil || s.cache == nil {
		return nil, errors.New("sync requires a provider and a snapshot cache")
	}

	now := s.clock.Now()
	r := &run{
		svc:     s,
		date:    now.In(s.location).Format(DateLayout),
		visited: make(map[string]bool),
		result:  &SyncResult{RunID: s.idgen.New()},
	}
	r.result.Date = r.date

	s.logger.Info("sync started", "run", r.result.RunID, "root", rootFolderID, "date", r.date)

	err := s.database.InTransaction(func(store Store) error {
		r.store = store
		if err := r.ensureRoot(ctx, rootFolderID); err != nil {
			return err
		}
		total, err := r.syncFolder(ctx, rootFolderID, "")
		if err != nil {
			return err
		}
		r.result.TotalWords = total
		return nil
	})
	if err != nil {
		s.logger.Error("sync failed, changes rolled back", "run", r.result.RunID, "error", err)
		return nil, err
	}

	s.logger.Info("sync finished",
		"run", r.result.RunID,
		"total_words", r.result.TotalWords,
		"diffed", r.result.DocumentsDiffed,
		"skipped", r.result.DocumentsSkipped,
		"failed", r.result.DocumentsFailed,
	)
	return r.result, nil
}

// today returns the current calendar date in the service's time zone.
func (s *WTService) today() time.Time {
	now := s.clock.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}
