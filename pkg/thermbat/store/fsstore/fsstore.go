// Package fsstore keeps blobs as files below a root directory.
//
// Writes go to a temporary file that is renamed into place, so readers never
// see a half-written blob. A lock file under the root serializes writers from
// different processes sharing the directory.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

const (
	lockName   = ".thermbat.lock"
	tempPrefix = ".tmp-"
)

// Store is a directory-backed blob store.
type Store struct {
	root string
	lock *flock.Flock
}

var (
	_ store.Store    = (*Store)(nil)
	_ store.Promoter = (*Store)(nil)
)

// Open prepares root for use, creating it when needed.
func Open(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("fsstore: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root %q: %w", root, err)
	}
	return &Store{
		root: root,
		lock: flock.New(filepath.Join(root, lockName)),
	}, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

func (s *Store) file(path string) (string, error) {
	if !store.ValidPath(path) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.root, filepath.FromSlash(path)), nil
}

// List walks the root and returns blob paths starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == lockName || strings.HasPrefix(name, tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	sort.Strings(out)
	return out, nil
}

// Get reads a blob.
func (s *Store) Get(_ context.Context, path string) ([]byte, error) {
	file, err := s.file(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get %s: %w", path, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return data, nil
}

// Put writes a blob atomically. The content type is not recorded.
func (s *Store) Put(_ context.Context, path string, data []byte, _ string) error {
	file, err := s.file(path)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		return writeAtomic(file, data)
	})
}

// Delete removes a blob; a missing blob is not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	file, err := s.file(path)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", path, err)
		}
		return nil
	})
}

// Exists reports whether the blob file is present.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	file, err := s.file(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// Promote renames src over dst, which replaces dst atomically.
func (s *Store) Promote(_ context.Context, src, dst string) error {
	srcFile, err := s.file(src)
	if err != nil {
		return err
	}
	dstFile, err := s.file(dst)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		if _, err := os.Stat(srcFile); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("promote %s: %w", src, store.ErrNotFound)
		}
		if err := os.MkdirAll(filepath.Dir(dstFile), 0o755); err != nil {
			return fmt.Errorf("promote %s: %w", src, err)
		}
		if err := os.Rename(srcFile, dstFile); err != nil {
			return fmt.Errorf("promote %s to %s: %w", src, dst, err)
		}
		return nil
	})
}

func (s *Store) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func writeAtomic(file string, data []byte) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", file, err)
	}
	if err := os.Rename(tmpName, file); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", file, err)
	}
	return nil
}
