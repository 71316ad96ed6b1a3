// Package memstore is an in-memory blob store for tests and dry runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

type blob struct {
	data        []byte
	contentType string
}

// Store keeps blobs in a map.
type Store struct {
	mu    sync.Mutex
	blobs map[string]blob
}

var (
	_ store.Store    = (*Store)(nil)
	_ store.Promoter = (*Store)(nil)
)

// New returns an empty store.
func New() *Store {
	return &Store{blobs: make(map[string]blob)}
}

// List returns the sorted paths starting with prefix.
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for p := range s.blobs {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Get returns a copy of the blob bytes.
func (s *Store) Get(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[path]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", path, store.ErrNotFound)
	}
	return append([]byte(nil), b.data...), nil
}

// Put stores a copy of data.
func (s *Store) Put(_ context.Context, path string, data []byte, contentType string) error {
	if !store.ValidPath(path) {
		return fmt.Errorf("put %q: invalid path", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = blob{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// Delete removes a blob if present.
func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, path)
	return nil
}

// Exists reports whether a blob is present.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[path]
	return ok, nil
}

// Promote moves src over dst under one lock.
func (s *Store) Promote(_ context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[src]
	if !ok {
		return fmt.Errorf("promote %s: %w", src, store.ErrNotFound)
	}
	s.blobs[dst] = b
	delete(s.blobs, src)
	return nil
}

// ContentType returns the content type recorded for path.
func (s *Store) ContentType(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[path].contentType
}

// Len returns the number of blobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
