package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"wordtrack/internal/wt"
)

var bucketSnapshots = []byte("snapshots")

// BoltCache keeps every snapshot in a single bbolt file, keyed by document ID.
type BoltCache struct {
	name string
	db   *bolt.DB
}

// NewBoltCache opens or creates a bbolt database at the given path.
func NewBoltCache(name, dbPath string) (*BoltCache, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucketSnapshots, err)
	}

	return &BoltCache{name: name, db: db}, nil
}

// Load returns the cached text, or "" if the document has none.
func (c *BoltCache) Load(docID string) (string, error) {
	var text string
	err := c.db.View(func(tx *bolt.Tx) error {
		// Get's result is only valid inside the transaction; string() copies it.
		text = string(tx.Bucket(bucketSnapshots).Get([]byte(docID)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("read snapshot %s: %w", docID, err)
	}
	return text, nil
}

// Save overwrites the cached text of a document.
func (c *BoltCache) Save(docID string, text string) error {
	if docID == "" {
		return fmt.Errorf("empty document id")
	}
	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(docID), []byte(text))
	})
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", docID, err)
	}
	return nil
}

// ValidateSetup verifies that the snapshots bucket exists.
func (c *BoltCache) ValidateSetup() error {
	return c.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSnapshots) == nil {
			return fmt.Errorf("bucket %s missing", bucketSnapshots)
		}
		return nil
	})
}

// Close releases the bbolt database.
func (c *BoltCache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

var _ wt.SnapshotCache = (*BoltCache)(nil)
