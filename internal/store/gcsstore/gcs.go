// Package gcsstore implements a Google Cloud Storage ruleset store.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/ruleval/internal/codec"
	"github.com/discochess/ruleval/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage ruleset store. The bucket must
// already exist.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store using application default credentials.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			client.Close()
			return nil, err
		}
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store) error

// WithPrefix sets an object name prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) error {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
		return nil
	}
}

// Get reads and decompresses a ruleset document.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := store.CheckName(name); err != nil {
		return nil, err
	}

	r, err := s.bucket.Object(s.key(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading ruleset: %w", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}
	data, err := s.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding ruleset: %w", err)
	}
	return data, nil
}

// Put compresses and writes a ruleset document.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := store.CheckName(name); err != nil {
		return err
	}

	encoded, err := s.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding ruleset: %w", err)
	}

	w := s.bucket.Object(s.key(name)).NewWriter(ctx)
	if _, err := w.Write(encoded); err != nil {
		w.Close()
		return fmt.Errorf("writing ruleset: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing ruleset write: %w", err)
	}
	return nil
}

// List returns the stored ruleset names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keyPrefix := s.prefix + "rulesets/"
	suffix := s.suffix()

	var names []string
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: keyPrefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing rulesets: %w", err)
		}
		name, ok := strings.CutSuffix(strings.TrimPrefix(attrs.Name, keyPrefix), suffix)
		if !ok || strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a ruleset object.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}

	if err := s.bucket.Object(s.key(name)).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return store.ErrNotFound
		}
		return fmt.Errorf("deleting ruleset: %w", err)
	}
	return nil
}

// Close closes the underlying GCS client.
func (s *Store) Close() error {
	return s.client.Close()
}

// key returns the full object name for a ruleset name.
func (s *Store) key(name string) string {
	return s.prefix + "rulesets/" + name + s.suffix()
}

// suffix is the object name suffix including the codec extension.
func (s *Store) suffix() string {
	suffix := ".json"
	if ext := s.codec.Extension(); ext != "" {
		suffix += "." + ext
	}
	return suffix
}
