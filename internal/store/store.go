// Package store defines the storage backend interface for named ruleset
// documents.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by all backends.
var (
	// ErrNotFound is returned when a ruleset does not exist in the store.
	ErrNotFound = errors.New("store: ruleset not found")

	// ErrInvalidName is returned for ruleset names that cannot be used
	// as storage keys.
	ErrInvalidName = errors.New("store: invalid ruleset name")
)

// Store defines the interface for ruleset storage backends.
// Implementations handle key formats and compression internally.
type Store interface {
	// Get reads a ruleset document by name.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put writes a ruleset document under the given name, replacing any
	// existing document.
	Put(ctx context.Context, name string, data []byte) error

	// List returns the stored ruleset names, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a ruleset. Deleting a missing ruleset returns
	// ErrNotFound.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}

// CheckName validates a ruleset name for use as a storage key: non-empty,
// no path separators, no leading dot.
func CheckName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
