// Package memstore provides an in-memory ruleset store, used in tests
// and as the default when no persistence is configured.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/discochess/ruleval/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory ruleset store. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	rulesets map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		rulesets: make(map[string][]byte),
	}
}

// Get reads a ruleset from memory.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := store.CheckName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.rulesets[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a copy of the document so later caller mutations cannot
// affect the store.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rulesets[name] = copied
	return nil
}

// List returns the stored ruleset names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.rulesets))
	for name := range s.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a ruleset.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rulesets[name]; !ok {
		return store.ErrNotFound
	}
	delete(s.rulesets, name)
	return nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
