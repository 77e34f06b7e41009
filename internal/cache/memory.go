package cache

import (
	"sync"

	"wordtrack/internal/wt"
)

// MemoryCache is an in-memory snapshot cache, useful for testing.
// This implementation is safe for concurrent use.
type MemoryCache struct {
	name  string
	texts map[string]string // document ID -> text
	mu    sync.RWMutex
}

// NewMemoryCache creates a new empty in-memory cache with the given name.
func NewMemoryCache(name string) *MemoryCache {
	return &MemoryCache{
		name:  name,
		texts: make(map[string]string),
	}
}

// Load returns the cached text, or "" if the document has none.
func (m *MemoryCache) Load(docID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texts[docID], nil
}

// Save overwrites the cached text of a document.
func (m *MemoryCache) Save(docID string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts[docID] = text
	return nil
}

// Len returns the number of cached documents.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.texts)
}

// ValidateSetup always succeeds for the in-memory cache.
func (m *MemoryCache) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryCache implements wt.SnapshotCache interface
var _ wt.SnapshotCache = (*MemoryCache)(nil)
