package wt

// SnapshotCache stores the full text of each document as of its last
// successful diff, keyed by document ID. It lives outside the relational store
// and is not part of the run transaction.
type SnapshotCache interface {
	// Load returns the cached text for a document.
	// A missing entry returns "" and no error.
	Load(docID string) (string, error)

	// Save overwrites the cached text for a document.
	Save(docID string, text string) error

	// ValidateSetup verifies that the cache backend is reachable and configured.
	ValidateSetup() error
}
