package wt

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable marks a failed call to the remote tree provider.
	// It never aborts a run: the caller falls back to a full sync or an empty
	// child list.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCacheIO marks a snapshot cache read or write failure. Reads degrade to
	// "no prior text" and writes only produce a warning.
	ErrCacheIO = errors.New("snapshot cache i/o error")

	// ErrStore marks a persisted store failure. It aborts the run and rolls
	// back every relational change made during it.
	ErrStore = errors.New("store error")
)

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

func providerError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrProviderUnavailable, op, err)
}

func cacheError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCacheIO, op, err)
}
