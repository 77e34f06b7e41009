package wt

import (
	"fmt"

	"wordtrack/internal/database/sqlc"
)

// GetHistory returns the most recent sync operations, ordered newest first.
func (s *WTService) GetHistory(limit int) ([]*sqlc.SyncOperation, error) {
	ops, err := s.database.ListSyncOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing sync operations: %w", err)
	}
	return ops, nil
}

// GetDocumentLog returns a document and its most recent revision events,
// newest first.
func (s *WTService) GetDocumentLog(docID string, limit int) (*sqlc.Document, []*sqlc.RevisionEvent, error) {
	doc, err := s.database.FindDocument(docID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding document: %w", err)
	}
	if doc == nil {
		return nil, nil, fmt.Errorf("document is not tracked: %s", docID)
	}

	events, err := s.database.ListRevisionEvents(docID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("listing revision events: %w", err)
	}
	return doc, events, nil
}

// TreeNode is a persisted folder with its subfolders and documents.
type TreeNode struct {
	Folder    *sqlc.Folder
	Folders   []*TreeNode
	Documents []*sqlc.Document
}

// TotalWords sums the word counts of every document beneath the node.
func (n *TreeNode) TotalWords() int64 {
	var total int64
	for _, d := range n.Documents {
		total += d.TotalWords
	}
	for _, f := range n.Folders {
		total += f.TotalWords()
	}
	return total
}

// GetTree rebuilds the persisted folder tree. It returns one node per root,
// that is per folder without a known parent, ordered by name.
func (s *WTService) GetTree() ([]*TreeNode, error) {
	folders, err := s.database.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	docs, err := s.database.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	nodes := make(map[string]*TreeNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &TreeNode{Folder: f}
	}

	// ListFolders and ListDocuments are ordered by name, so children keep that order.
	var roots []*TreeNode
	for _, f := range folders {
		node := nodes[f.ID]
		parent, ok := nodes[f.ParentID.String]
		if !f.ParentID.Valid || !ok {
			roots = append(roots, node)
			continue
		}
		parent.Folders = append(parent.Folders, node)
	}
	for _, d := range docs {
		if parent, ok := nodes[d.FolderID]; ok {
			parent.Documents = append(parent.Documents, d)
		}
	}
	return roots, nil
}
