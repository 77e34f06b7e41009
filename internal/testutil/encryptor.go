package testutil

import (
	"wordtrack/internal/encryption"
	"wordtrack/internal/wt"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() wt.Encryptor {
	return encryption.NewTestEncryptor()
}
