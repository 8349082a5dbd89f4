// Package cachedstore wraps another store with an in-memory LRU cache
// of decoded ruleset documents.
package cachedstore

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/ruleval/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store caches Get results from an underlying store. Put and Delete
// pass through and invalidate the cached entry so subsequent reads
// observe the write.
type Store struct {
	inner store.Store
	cache *lru.Cache[string, []byte]
}

// New wraps inner with an LRU cache holding up to capacity documents.
func New(inner store.Store, capacity int) (*Store, error) {
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating ruleset cache: %w", err)
	}
	return &Store{inner: inner, cache: cache}, nil
}

// Get returns the cached document if present, otherwise reads through
// to the underlying store and caches the result.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := store.CheckName(name); err != nil {
		return nil, err
	}

	if data, ok := s.cache.Get(name); ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Add(name, cached)
	return data, nil
}

// Put writes through to the underlying store and refreshes the cache.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Add(name, cached)
	return nil
}

// List delegates to the underlying store. Listings are not cached
// because they are cheap relative to document decodes.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

// Delete removes the document from the underlying store and the cache.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.inner.Delete(ctx, name); err != nil {
		return err
	}
	s.cache.Remove(name)
	return nil
}

// Close purges the cache and closes the underlying store.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.inner.Close()
}
