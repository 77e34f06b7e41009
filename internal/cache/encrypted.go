package cache

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"wordtrack/internal/wt"
)

// ErrLocked is returned by EncryptedCache.Load before Unlock was called.
var ErrLocked = errors.New("snapshot cache is locked")

// EncryptedCache encrypts snapshots before handing them to an inner cache.
// Saving only needs the public key; loading needs a DecryptionContext
// obtained from Unlock.
type EncryptedCache struct {
	inner wt.SnapshotCache
	enc   wt.Encryptor
	dec   wt.DecryptionContext
}

// NewEncryptedCache wraps inner with enc.
func NewEncryptedCache(inner wt.SnapshotCache, enc wt.Encryptor) *EncryptedCache {
	return &EncryptedCache{inner: inner, enc: enc}
}

// Unlock unlocks the private key for the rest of the session.
func (c *EncryptedCache) Unlock(passphrase string) error {
	dec, err := c.enc.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking snapshot cache: %w", err)
	}
	c.dec = dec
	return nil
}

// Load decrypts the cached snapshot. A missing snapshot is "" as usual.
func (c *EncryptedCache) Load(docID string) (string, error) {
	sealed, err := c.inner.Load(docID)
	if err != nil || sealed == "" {
		return "", err
	}
	if c.dec == nil {
		return "", ErrLocked
	}

	var plain bytes.Buffer
	if err := c.dec.Decrypt(strings.NewReader(sealed), &plain); err != nil {
		return "", fmt.Errorf("decrypting snapshot %s: %w", docID, err)
	}
	return plain.String(), nil
}

// Save encrypts text and stores the ciphertext in the inner cache.
func (c *EncryptedCache) Save(docID string, text string) error {
	var sealed bytes.Buffer
	if err := c.enc.Encrypt(strings.NewReader(text), &sealed); err != nil {
		return fmt.Errorf("encrypting snapshot %s: %w", docID, err)
	}
	return c.inner.Save(docID, sealed.String())
}

// ValidateSetup checks the key pair and the inner cache.
func (c *EncryptedCache) ValidateSetup() error {
	if !c.enc.IsConfigured() {
		return fmt.Errorf("encryption keys are not set up (run `wordtrack config keys`)")
	}
	return c.inner.ValidateSetup()
}

// Close closes the inner cache if it holds resources.
func (c *EncryptedCache) Close() error {
	if closer, ok := c.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

var _ wt.SnapshotCache = (*EncryptedCache)(nil)
