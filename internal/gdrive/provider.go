// Package gdrive implements wt.Provider on top of the Google Drive v3 API.
package gdrive

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"wordtrack/internal/wt"
)

const (
	mimeFolder   = "application/vnd.google-apps.folder"
	mimeDocument = "application/vnd.google-apps.document"

	pageSize   = 1000
	listFields = googleapi.Field("nextPageToken, files(id, name, mimeType)")
)

// DriveProvider reads a folder tree of Google Docs.
type DriveProvider struct {
	svc       *drive.Service
	tokenPath string // reported in AuthRequiredError
}

// NewDriveProvider wraps an authorized Drive service.
func NewDriveProvider(svc *drive.Service, tokenPath string) *DriveProvider {
	return &DriveProvider{svc: svc, tokenPath: tokenPath}
}

// ListChildren returns the folders and Google Docs directly inside folderID.
// Trashed entries and other file types are left out. Every page is read
// before returning and the result is ordered folders first, then by name
// and ID, so traversal order does not depend on the API.
func (p *DriveProvider) ListChildren(ctx context.Context, folderID string) ([]wt.Node, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))

	var nodes []wt.Node
	pageToken := ""
	for {
		call := p.svc.Files.List().
			Context(ctx).
			Q(q).
			Fields(listFields).
			PageSize(pageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", folderID, classify(err, p.tokenPath))
		}

		for _, f := range res.Files {
			switch f.MimeType {
			case mimeFolder:
				nodes = append(nodes, wt.FolderNode{ID: f.Id, Name: f.Name})
			case mimeDocument:
				nodes = append(nodes, wt.DocumentNode{ID: f.Id, Name: f.Name})
			}
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	sortNodes(nodes)
	return nodes, nil
}

// GetName returns the display name of a file or folder.
func (p *DriveProvider) GetName(ctx context.Context, folderID string) (string, error) {
	f, err := p.svc.Files.Get(folderID).
		Context(ctx).
		Fields("name").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("get name of %s: %w", folderID, classify(err, p.tokenPath))
	}
	return f.Name, nil
}

// ExportText exports a Google Doc as plain text.
func (p *DriveProvider) ExportText(ctx context.Context, docID string) (string, error) {
	resp, err := p.svc.Files.Export(docID, "text/plain").
		Context(ctx).
		Download()
	if err != nil {
		return "", fmt.Errorf("export %s: %w", docID, classify(err, p.tokenPath))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read export of %s: %w", docID, err)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// GetChangeMarker returns the file's version number. Drive increments it on
// every change to the file.
func (p *DriveProvider) GetChangeMarker(ctx context.Context, docID string) (string, error) {
	f, err := p.svc.Files.Get(docID).
		Context(ctx).
		Fields("version").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("get version of %s: %w", docID, classify(err, p.tokenPath))
	}
	if f.Version == 0 {
		return "", fmt.Errorf("no version reported for %s", docID)
	}
	return strconv.FormatInt(f.Version, 10), nil
}

func sortNodes(nodes []wt.Node) {
	kind := func(n wt.Node) int {
		if _, ok := n.(wt.FolderNode); ok {
			return 0
		}
		return 1
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if ka, kb := kind(a), kind(b); ka != kb {
			return ka < kb
		}
		if a.NodeName() != b.NodeName() {
			return a.NodeName() < b.NodeName()
		}
		return a.NodeID() < b.NodeID()
	})
}

// escapeQuery escapes a value for use inside a single-quoted Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

var _ wt.Provider = (*DriveProvider)(nil)
