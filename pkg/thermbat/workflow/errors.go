package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrPendingNotFound indicates the change request no longer exists.
	ErrPendingNotFound = errors.New("pending change request not found")
	// ErrLiveNotFound indicates the record an edit targets does not exist.
	ErrLiveNotFound = errors.New("live record not found")
	// ErrNotLivePath indicates a submission aimed at a pending path.
	ErrNotLivePath = errors.New("path is a pending change request, not a live record")
	// ErrNotPendingPath indicates a review decision aimed at a live path.
	ErrNotPendingPath = errors.New("path is not a pending change request")
)

// StoreError reports a failed store call made by a workflow action.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, path string, err error) error {
	return &StoreError{Op: op, Path: path, Err: err}
}
