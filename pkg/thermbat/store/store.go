// Package store defines the blob store the archive is kept in.
//
// Paths are "/"-delimited strings; folders are prefix conventions only. All
// calls block until the backend answers. Backends do not lock across calls:
// two writers to one path race and the last write wins.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrNotFound indicates the requested blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Store is a flat blob namespace.
type Store interface {
	// List returns every blob path starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
	// Get returns the blob bytes or ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)
	// Put creates or overwrites a blob.
	Put(ctx context.Context, path string, data []byte, contentType string) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
	// Exists reports whether a blob is present.
	Exists(ctx context.Context, path string) (bool, error)
}

// Promoter is implemented by backends that can replace dst with the bytes of
// src and remove src as one atomic step.
type Promoter interface {
	Promote(ctx context.Context, src, dst string) error
}

// Folders returns the distinct first path segments below prefix, sorted.
// It is the delimiter listing used to browse battery folders.
func Folders(ctx context.Context, s Store, prefix string) ([]string, error) {
	paths, err := s.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		rest := strings.TrimPrefix(p, prefix)
		i := strings.Index(rest, "/")
		if i <= 0 {
			continue
		}
		name := rest[:i]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// CleanPath normalizes a blob path: no leading slash, no empty segments.
func CleanPath(p string) string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return strings.Join(out, "/")
}

// ValidPath reports whether p is a usable blob path.
func ValidPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") {
		return false
	}
	for _, part := range strings.Split(p, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
