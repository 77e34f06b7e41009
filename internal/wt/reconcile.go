package wt

import (
	"context"
	"database/sql"
	"fmt"

	"wordtrack/internal/database/sqlc"
	"wordtrack/internal/worddiff"
)

// run carries the state of one SyncTree invocation. store is bound to the
// run's transaction.
type run struct {
	svc     *WTService
	store   Store
	date    string
	visited map[string]bool
	result  *SyncResult
}

// FolderRefresh is the outcome of reconciling a listed folder with its
// persisted row.
type FolderRefresh int

const (
	FolderUnchanged FolderRefresh = iota
	FolderCreated
	FolderRenamed
	FolderMoved
)

func (f FolderRefresh) String() string {
	switch f {
	case FolderCreated:
		return "created"
	case FolderRenamed:
		return "renamed"
	case FolderMoved:
		return "moved"
	default:
		return "unchanged"
	}
}

// NameLookup is the outcome of fetching a folder's display name. When the
// lookup fails Name holds the fallback and Err the cause.
type NameLookup struct {
	Name string
	Err  error
}

// OK reports whether the name came from the provider.
func (n NameLookup) OK() bool { return n.Err == nil }

func (r *run) lookupName(ctx context.Context, folderID string) NameLookup {
	name, err := r.svc.provider.GetName(ctx, folderID)
	if err != nil {
		return NameLookup{Name: folderID, Err: providerError("getting folder name", err)}
	}
	if name == "" {
		return NameLookup{Name: folderID}
	}
	return NameLookup{Name: name}
}

// ensureRoot creates the root folder row on first sight. The root's name is
// fixed at creation and never refreshed.
func (r *run) ensureRoot(ctx context.Context, rootID string) error {
	now := r.svc.clock.Now()

	root, err := r.store.FindFolder(rootID)
	if err != nil {
		return storeError("finding root folder", err)
	}
	if root != nil {
		if err := r.store.UpdateFolder(root.ID, root.Name, root.ParentID, now); err != nil {
			return storeError("touching root folder", err)
		}
		return nil
	}

	lookup := r.lookupName(ctx, rootID)
	if !lookup.OK() {
		r.svc.logger.Warn("root folder name lookup failed, using id", "run", r.result.RunID, "folder", rootID, "error", lookup.Err)
	}
	if _, err := r.store.CreateFolder(rootID, lookup.Name, sql.NullString{}, now); err != nil {
		return storeError("creating root folder", err)
	}
	r.result.FoldersCreated++
	r.svc.logger.Info("root folder created", "run", r.result.RunID, "folder", rootID, "name", lookup.Name)
	return nil
}

// syncFolder visits the children of folderID depth-first, pre-order, and
// returns the total word count of the documents beneath it. relPath is the
// slash-joined name path from the root, used for ignore matching.
func (r *run) syncFolder(ctx context.Context, folderID, relPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.visited[folderID] = true

	children, err := r.svc.provider.ListChildren(ctx, folderID)
	if err != nil {
		r.result.FoldersFailed++
		r.svc.logger.Warn("listing folder failed, treating as empty",
			"run", r.result.RunID, "folder", folderID, "error", providerError("listing children", err))
		return 0, nil
	}

	var total int64
	for _, child := range children {
		childPath := joinPath(relPath, child.NodeName())
		if r.svc.ignore.Match(child.NodeName(), childPath) {
			r.svc.logger.Debug("ignored", "run", r.result.RunID, "id", child.NodeID(), "path", childPath)
			continue
		}
		if r.visited[child.NodeID()] {
			r.svc.logger.Debug("already visited", "run", r.result.RunID, "id", child.NodeID(), "path", childPath)
			continue
		}

		switch n := child.(type) {
		case FolderNode:
			if _, err := r.upsertFolder(n, folderID); err != nil {
				return 0, err
			}
			sub, err := r.syncFolder(ctx, n.ID, childPath)
			if err != nil {
				return 0, err
			}
			total += sub
		case DocumentNode:
			words, err := r.syncDocument(ctx, n, folderID)
			if err != nil {
				return 0, err
			}
			total += words
		}
	}
	return total, nil
}

func (r *run) upsertFolder(n FolderNode, parentID string) (FolderRefresh, error) {
	now := r.svc.clock.Now()
	parent := sql.NullString{String: parentID, Valid: true}

	existing, err := r.store.FindFolder(n.ID)
	if err != nil {
		return FolderUnchanged, storeError(fmt.Sprintf("finding folder %s", n.ID), err)
	}
	if existing == nil {
		if _, err := r.store.CreateFolder(n.ID, n.Name, parent, now); err != nil {
			return FolderUnchanged, storeError(fmt.Sprintf("creating folder %s", n.ID), err)
		}
		r.result.FoldersCreated++
		r.svc.logger.Info("folder created", "run", r.result.RunID, "folder", n.ID, "name", n.Name)
		return FolderCreated, nil
	}

	outcome := FolderUnchanged
	switch {
	case existing.ParentID != parent:
		outcome = FolderMoved
	case existing.Name != n.Name:
		outcome = FolderRenamed
	}

	if err := r.store.UpdateFolder(n.ID, n.Name, parent, now); err != nil {
		return outcome, storeError(fmt.Sprintf("updating folder %s", n.ID), err)
	}
	if outcome != FolderUnchanged {
		r.result.FoldersUpdated++
		r.svc.logger.Info("folder "+outcome.String(), "run", r.result.RunID, "folder", n.ID, "old_name", existing.Name, "name", n.Name)
	}
	return outcome, nil
}

// syncDocument reconciles one document and runs it through the revision
// gate, the differ and the aggregation engine. It returns the document's
// current word count.
func (r *run) syncDocument(ctx context.Context, n DocumentNode, folderID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.visited[n.ID] = true

	doc, err := r.upsertDocument(n, folderID)
	if err != nil {
		return 0, err
	}

	marker := r.observeMarker(ctx, n.ID)
	if Decide(doc.LastRevisionID, marker) == GateSkip {
		if err := aggregate(r.store, doc, r.date, nil, r.svc.clock.Now()); err != nil {
			return 0, err
		}
		r.result.DocumentsSkipped++
		r.svc.logger.Debug("document unchanged", "run", r.result.RunID, "doc", doc.ID, "marker", marker.Value)
		return doc.TotalWords, nil
	}

	delta, ok := r.diffDocument(ctx, doc, marker)
	if !ok {
		r.result.DocumentsFailed++
		return doc.TotalWords, nil
	}
	if err := aggregate(r.store, doc, r.date, delta, r.svc.clock.Now()); err != nil {
		return 0, err
	}
	r.result.DocumentsDiffed++
	r.svc.logger.Info("document synced",
		"run", r.result.RunID, "doc", doc.ID, "name", doc.Name,
		"added", delta.Added, "deleted", delta.Deleted, "total", delta.Total)
	return doc.TotalWords, nil
}

func (r *run) upsertDocument(n DocumentNode, folderID string) (*sqlc.Document, error) {
	doc, err := r.store.FindDocument(n.ID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("finding document %s", n.ID), err)
	}
	if doc == nil {
		doc, err = r.store.CreateDocument(n.ID, n.Name, folderID, r.svc.clock.Now())
		if err != nil {
			return nil, storeError(fmt.Sprintf("creating document %s", n.ID), err)
		}
		r.result.DocumentsCreated++
		r.svc.logger.Info("document discovered", "run", r.result.RunID, "doc", n.ID, "name", n.Name)
		return doc, nil
	}

	if doc.Name == n.Name && doc.FolderID == folderID {
		return doc, nil
	}
	if err := r.store.UpdateDocumentLocation(n.ID, n.Name, folderID); err != nil {
		return nil, storeError(fmt.Sprintf("moving document %s", n.ID), err)
	}
	r.result.DocumentsMoved++
	r.svc.logger.Info("document renamed or moved",
		"run", r.result.RunID, "doc", n.ID,
		"old_name", doc.Name, "name", n.Name,
		"old_folder", doc.FolderID, "folder", folderID)
	doc.Name = n.Name
	doc.FolderID = folderID
	return doc, nil
}

func (r *run) observeMarker(ctx context.Context, docID string) Marker {
	value, err := r.svc.provider.GetChangeMarker(ctx, docID)
	if err != nil {
		r.svc.logger.Warn("change marker unavailable, forcing full sync",
			"run", r.result.RunID, "doc", docID, "error", providerError("getting change marker", err))
		return Marker{}
	}
	return Marker{Value: value, Available: true}
}

// diffDocument exports the document, diffs it against the cached snapshot and
// refreshes the cache. ok is false when the document could not be diffed this
// run; such documents keep their persisted state.
func (r *run) diffDocument(ctx context.Context, doc *sqlc.Document, marker Marker) (*Delta, bool) {
	text, err := r.svc.provider.ExportText(ctx, doc.ID)
	if err != nil {
		r.svc.logger.Warn("exporting document failed, skipping",
			"run", r.result.RunID, "doc", doc.ID, "error", providerError("exporting text", err))
		return nil, false
	}

	prev, err := r.svc.cache.Load(doc.ID)
	if err != nil {
		r.svc.logger.Warn("reading snapshot cache failed, treating as empty",
			"run", r.result.RunID, "doc", doc.ID, "error", cacheError("loading snapshot", err))
		prev = ""
	}

	cur := worddiff.Tokenize(text)
	res, err := worddiff.Diff(worddiff.Tokenize(prev), cur)
	if err != nil {
		r.svc.logger.Error("diffing document failed, skipping", "run", r.result.RunID, "doc", doc.ID, "error", err)
		return nil, false
	}

	if err := r.svc.cache.Save(doc.ID, text); err != nil {
		r.svc.logger.Warn("writing snapshot cache failed",
			"run", r.result.RunID, "doc", doc.ID, "error", cacheError("saving snapshot", err))
	}

	return &Delta{
		Added:      int64(res.Added),
		Deleted:    int64(res.Deleted),
		Total:      int64(len(cur)),
		RevisionID: marker.NullString(),
	}, true
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
