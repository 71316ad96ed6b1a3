// Package sqlitestore keeps the archive in a single SQLite database file.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by another version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store is a SQLite-backed blob store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var (
	_ store.Store    = (*Store)(nil)
	_ store.Promoter = (*Store)(nil)
)

// Open creates or opens the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlitestore: database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// List returns blob paths starting with prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path FROM blobs WHERE substr(path, 1, length(?1)) = ?1 ORDER BY path",
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the blob bytes.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM blobs WHERE path = ?", path).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", path, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return data, nil
}

// Put upserts a blob.
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if !store.ValidPath(path) {
		return fmt.Errorf("put %q: invalid path", path)
	}
	if data == nil {
		data = []byte{}
	}
	return s.execWithRetry(ctx, `
INSERT INTO blobs (path, data, content_type, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    data = excluded.data,
    content_type = excluded.content_type,
    updated_at = excluded.updated_at`,
		path, data, contentType, s.timestamp(),
	)
}

// Delete removes a blob if present.
func (s *Store) Delete(ctx context.Context, path string) error {
	return s.execWithRetry(ctx, "DELETE FROM blobs WHERE path = ?", path)
}

// Exists reports whether a blob is present.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM blobs WHERE path = ?", path).Scan(&n); err != nil {
		return false, fmt.Errorf("exists %s: %w", path, err)
	}
	return n > 0, nil
}

// ContentType returns the recorded content type of a blob.
func (s *Store) ContentType(ctx context.Context, path string) (string, error) {
	var ct string
	err := s.db.QueryRowContext(ctx, "SELECT content_type FROM blobs WHERE path = ?", path).Scan(&ct)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("content type %s: %w", path, store.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return ct, nil
}

// Promote replaces dst with src and removes src in one transaction.
func (s *Store) Promote(ctx context.Context, src, dst string) error {
	if !store.ValidPath(dst) {
		return fmt.Errorf("promote %q: invalid path", dst)
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin promote tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var (
			data        []byte
			contentType string
		)
		err = tx.QueryRowContext(ctx, "SELECT data, content_type FROM blobs WHERE path = ?", src).Scan(&data, &contentType)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("promote %s: %w", src, store.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", src, err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO blobs (path, data, content_type, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    data = excluded.data,
    content_type = excluded.content_type,
    updated_at = excluded.updated_at`,
			dst, data, contentType, s.timestamp(),
		); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM blobs WHERE path = ?", src); err != nil {
			return fmt.Errorf("delete %s: %w", src, err)
		}
		return tx.Commit()
	})
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
