package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wordtrack/internal/database/sqlc"
	"wordtrack/internal/wt"
)

// queryStore implements wt.Store on top of sqlc queries. The queries may be
// bound to the connection pool or to a transaction.
type queryStore struct {
	queries *sqlc.Queries
}

// Folder operations

func (s *queryStore) FindFolder(id string) (*sqlc.Folder, error) {
	f, err := s.queries.GetFolder(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	return &f, nil
}

func (s *queryStore) CreateFolder(id, name string, parentID sql.NullString, syncedAt time.Time) (*sqlc.Folder, error) {
	params := sqlc.InsertFolderParams{
		ID:         id,
		Name:       name,
		ParentID:   parentID,
		LastSynced: syncedAt,
	}
	if err := s.queries.InsertFolder(context.Background(), params); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	return &sqlc.Folder{
		ID:         id,
		Name:       name,
		ParentID:   parentID,
		LastSynced: syncedAt,
	}, nil
}

func (s *queryStore) UpdateFolder(id, name string, parentID sql.NullString, syncedAt time.Time) error {
	err := s.queries.UpdateFolder(context.Background(), sqlc.UpdateFolderParams{
		Name:       name,
		ParentID:   parentID,
		LastSynced: syncedAt,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("updating folder: %w", err)
	}
	return nil
}

func (s *queryStore) ListFolders() ([]*sqlc.Folder, error) {
	folders, err := s.queries.ListFolders(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	return toPtrs(folders), nil
}

// Document operations

func (s *queryStore) FindDocument(id string) (*sqlc.Document, error) {
	d, err := s.queries.GetDocument(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding document: %w", err)
	}
	return &d, nil
}

func (s *queryStore) CreateDocument(id, name, folderID string, syncedAt time.Time) (*sqlc.Document, error) {
	err := s.queries.InsertDocument(context.Background(), sqlc.InsertDocumentParams{
		ID:         id,
		Name:       name,
		FolderID:   folderID,
		LastSynced: syncedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	return &sqlc.Document{
		ID:         id,
		Name:       name,
		FolderID:   folderID,
		LastSynced: syncedAt,
	}, nil
}

func (s *queryStore) UpdateDocumentLocation(id, name, folderID string) error {
	err := s.queries.UpdateDocumentLocation(context.Background(), sqlc.UpdateDocumentLocationParams{
		Name:     name,
		FolderID: folderID,
		ID:       id,
	})
	if err != nil {
		return fmt.Errorf("updating document location: %w", err)
	}
	return nil
}

func (s *queryStore) UpdateDocumentRevision(id string, revisionID sql.NullString, totalWords int64) error {
	err := s.queries.UpdateDocumentRevision(context.Background(), sqlc.UpdateDocumentRevisionParams{
		LastRevisionID: revisionID,
		TotalWords:     totalWords,
		ID:             id,
	})
	if err != nil {
		return fmt.Errorf("updating document revision: %w", err)
	}
	return nil
}

func (s *queryStore) TouchDocument(id string, syncedAt time.Time) error {
	err := s.queries.TouchDocument(context.Background(), sqlc.TouchDocumentParams{
		LastSynced: syncedAt,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("touching document: %w", err)
	}
	return nil
}

func (s *queryStore) ListDocuments() ([]*sqlc.Document, error) {
	docs, err := s.queries.ListDocuments(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return toPtrs(docs), nil
}

// DailySnapshot operations

func (s *queryStore) FindDailySnapshot(docID, date string) (*sqlc.DailySnapshot, error) {
	snap, err := s.queries.GetDailySnapshot(context.Background(), sqlc.GetDailySnapshotParams{
		DocumentID: docID,
		Date:       date,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding daily snapshot: %w", err)
	}
	return &snap, nil
}

func (s *queryStore) CreateDailySnapshot(docID, date string, totalWords, netAdded int64, createdAt time.Time) (*sqlc.DailySnapshot, error) {
	id, err := s.queries.InsertDailySnapshot(context.Background(), sqlc.InsertDailySnapshotParams{
		DocumentID: docID,
		Date:       date,
		TotalWords: totalWords,
		NetAdded:   netAdded,
		CreatedAt:  createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating daily snapshot: %w", err)
	}
	return &sqlc.DailySnapshot{
		ID:         id,
		DocumentID: docID,
		Date:       date,
		TotalWords: totalWords,
		NetAdded:   netAdded,
		CreatedAt:  createdAt,
	}, nil
}

func (s *queryStore) UpdateDailySnapshot(id, totalWords, netAdded int64) error {
	err := s.queries.UpdateDailySnapshot(context.Background(), sqlc.UpdateDailySnapshotParams{
		TotalWords: totalWords,
		NetAdded:   netAdded,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("updating daily snapshot: %w", err)
	}
	return nil
}

func (s *queryStore) ListDailySnapshotsSince(date string) ([]*sqlc.DailySnapshot, error) {
	snaps, err := s.queries.ListDailySnapshotsSince(context.Background(), date)
	if err != nil {
		return nil, fmt.Errorf("listing daily snapshots: %w", err)
	}
	return toPtrs(snaps), nil
}

// RevisionEvent operations

// AppendRevisionEvent inserts event and sets its ID. Events are never updated.
func (s *queryStore) AppendRevisionEvent(event *sqlc.RevisionEvent) error {
	id, err := s.queries.InsertRevisionEvent(context.Background(), sqlc.InsertRevisionEventParams{
		DocumentID:   event.DocumentID,
		RevisionID:   event.RevisionID,
		Timestamp:    event.Timestamp,
		WordsAdded:   event.WordsAdded,
		WordsDeleted: event.WordsDeleted,
		NetChange:    event.NetChange,
		Description:  event.Description,
	})
	if err != nil {
		return fmt.Errorf("appending revision event: %w", err)
	}
	event.ID = id
	return nil
}

func (s *queryStore) ListRevisionEvents(docID string, limit int) ([]*sqlc.RevisionEvent, error) {
	events, err := s.queries.ListRevisionEventsByDocument(context.Background(), sqlc.ListRevisionEventsByDocumentParams{
		DocumentID: docID,
		Limit:      int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("listing revision events: %w", err)
	}
	return toPtrs(events), nil
}

func toPtrs[T any](rows []T) []*T {
	result := make([]*T, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}

var _ wt.Store = (*queryStore)(nil)
