package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wordtrack/internal/wt"
)

// FileSystemCache is a filesystem-based snapshot cache. It keeps one file
// per document:
//
//	<root>/
//	  snapshots/
//	    <docID>.txt
type FileSystemCache struct {
	name         string
	root         string
	snapshotsDir string
}

// NewFileSystemCache creates a new filesystem cache rooted at the given path.
func NewFileSystemCache(name, root string) (*FileSystemCache, error) {
	snapshotsDir := filepath.Join(root, "snapshots")
	if err := os.MkdirAll(snapshotsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	return &FileSystemCache{
		name:         name,
		root:         root,
		snapshotsDir: snapshotsDir,
	}, nil
}

func (c *FileSystemCache) path(docID string) (string, error) {
	if err := checkDocID(docID); err != nil {
		return "", err
	}
	return filepath.Join(c.snapshotsDir, docID+".txt"), nil
}

// Load returns the cached text, or "" if no snapshot file exists.
func (c *FileSystemCache) Load(docID string) (string, error) {
	p, err := c.path(docID)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}
	return string(data), nil
}

// Save overwrites the snapshot file of a document.
func (c *FileSystemCache) Save(docID string, text string) error {
	p, err := c.path(docID)
	if err != nil {
		return err
	}
	return writeFileAtomic(p, strings.NewReader(text))
}

// ValidateSetup verifies that the cache directories are accessible.
func (c *FileSystemCache) ValidateSetup() error {
	for _, dir := range []string{c.root, c.snapshotsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("cache directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("cache path is not a directory: %s", dir)
		}
	}
	return nil
}

// writeFileAtomic writes data from r to destPath using a temp file in the
// same directory and a rename, so readers never see a partial snapshot.
func writeFileAtomic(destPath string, r io.Reader) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemCache implements wt.SnapshotCache interface
var _ wt.SnapshotCache = (*FileSystemCache)(nil)
