package testutil

import (
	"sync"

	"wordtrack/internal/cache"
	"wordtrack/internal/wt"
)

// NewTestCache creates a new in-memory snapshot cache for testing.
func NewTestCache() *cache.MemoryCache {
	return cache.NewMemoryCache("test-cache")
}

// FailingCache wraps a snapshot cache and fails loads and/or saves on demand.
type FailingCache struct {
	inner wt.SnapshotCache

	mu      sync.Mutex
	loadErr error
	saveErr error
}

// NewFailingCache wraps inner. It behaves like inner until a failure is set.
func NewFailingCache(inner wt.SnapshotCache) *FailingCache {
	return &FailingCache{inner: inner}
}

// FailLoads makes every Load return err. A nil err clears it.
func (c *FailingCache) FailLoads(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadErr = err
}

// FailSaves makes every Save return err. A nil err clears it.
func (c *FailingCache) FailSaves(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveErr = err
}

func (c *FailingCache) Load(docID string) (string, error) {
	c.mu.Lock()
	err := c.loadErr
	c.mu.Unlock()
	if err != nil {
		return "", err
	}
	return c.inner.Load(docID)
}

func (c *FailingCache) Save(docID string, text string) error {
	c.mu.Lock()
	err := c.saveErr
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.inner.Save(docID, text)
}

func (c *FailingCache) ValidateSetup() error {
	return c.inner.ValidateSetup()
}

var _ wt.SnapshotCache = (*FailingCache)(nil)
