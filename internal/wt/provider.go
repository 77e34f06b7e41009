package wt

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks wordtrack/internal/wt Provider

import "context"

// Provider is the remote document tree that wordtrack synchronizes from.
// Every method performs a blocking remote call.
type Provider interface {
	// ListChildren returns every non-trashed child of a folder. Pagination
	// must be fully drained before returning.
	ListChildren(ctx context.Context, folderID string) ([]Node, error)

	// GetName returns the display name of a folder.
	GetName(ctx context.Context, folderID string) (string, error)

	// ExportText returns the plain text content of a document.
	ExportText(ctx context.Context, docID string) (string, error)

	// GetChangeMarker returns an opaque token that changes whenever the
	// document content changes. An error means the marker is unavailable.
	GetChangeMarker(ctx context.Context, docID string) (string, error)
}
