// Package diskstore implements a disk-based ruleset store.
package diskstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/discochess/ruleval/internal/codec"
	"github.com/discochess/ruleval/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

const rulesetDir = "rulesets"

// Store keeps ruleset documents as files under <root>/rulesets/. The
// codec handles compression and picks the file extension.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a disk store rooted at the given directory. The root must
// exist; the rulesets subdirectory is created on first write.
func New(root string, codec codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: codec,
	}, nil
}

// Get reads and decompresses a ruleset document.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := store.CheckName(name); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading ruleset: %w", err)
	}

	data, err := s.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding ruleset: %w", err)
	}
	return data, nil
}

// Put compresses and writes a ruleset document. The write goes through a
// temp file and rename so a concurrent reader never sees a torn file.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	encoded, err := s.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding ruleset: %w", err)
	}

	dir := filepath.Join(s.root, rulesetDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating ruleset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ruleset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming ruleset: %w", err)
	}
	return nil
}

// List returns the stored ruleset names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, rulesetDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing rulesets: %w", err)
	}

	suffix := s.suffix()
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), suffix)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a ruleset file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("deleting ruleset: %w", err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// path returns the filesystem path for a ruleset name.
func (s *Store) path(name string) string {
	return filepath.Join(s.root, rulesetDir, name+s.suffix())
}

// suffix is the filename suffix including the codec extension.
func (s *Store) suffix() string {
	suffix := ".json"
	if ext := s.codec.Extension(); ext != "" {
		suffix += "." + ext
	}
	return suffix
}
