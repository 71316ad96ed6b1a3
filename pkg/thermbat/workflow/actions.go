package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/thermbat-go/internal/logging"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/archive"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/output"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

// UploadReport summarizes one upload batch.
type UploadReport struct {
	// Uploaded lists the live paths written.
	Uploaded []string
	// Skipped lists the keys of blocks already present in the archive.
	Skipped []string
}

// Upload publishes every block not already archived. All files of the batch
// share one timestamp. A store failure stops the batch; the report then
// covers the blocks handled before it.
func (s *Service) Upload(ctx context.Context, blocks []models.DataBlock) (UploadReport, error) {
	var report UploadReport
	ts := s.now()
	logger := s.log(ctx)

	for _, b := range blocks {
		folder, subfolder := archive.Resolve(b.Tag, b.Key)
		dup, err := archive.Exists(ctx, s.store, folder, subfolder, archive.UniqueToken(b.Key))
		if err != nil {
			return report, storeErr("list", archive.Prefix(folder, subfolder), err)
		}
		if dup {
			report.Skipped = append(report.Skipped, b.Key)
			logger.Debug("skipping duplicate build",
				logging.FieldBattery, folder,
				logging.FieldTag, string(b.Tag),
				"key", b.Key,
			)
			continue
		}

		data, err := output.ToJSON(b.Record, true)
		if err != nil {
			return report, fmt.Errorf("encode %s: %w", b.Key, err)
		}
		path := archive.StoredFileFor(b.Tag, b.Key, ts).Path()
		if err := s.store.Put(ctx, path, data, output.ContentType); err != nil {
			return report, storeErr("put", path, err)
		}
		report.Uploaded = append(report.Uploaded, path)
		logger.Info("uploaded record", logging.FieldPath, path, logging.FieldTag, string(b.Tag))
	}
	return report, nil
}

// Submit stores an edited record as a change request for livePath and
// returns the pending path. A newer submission replaces an older one.
func (s *Service) Submit(ctx context.Context, livePath string, rec models.Record) (string, error) {
	if archive.IsPending(livePath) {
		return "", fmt.Errorf("submit %s: %w", livePath, ErrNotLivePath)
	}
	ok, err := s.store.Exists(ctx, livePath)
	if err != nil {
		return "", storeErr("exists", livePath, err)
	}
	if !ok {
		return "", fmt.Errorf("submit %s: %w", livePath, ErrLiveNotFound)
	}

	data, err := output.ToJSON(rec, true)
	if err != nil {
		return "", fmt.Errorf("encode edit: %w", err)
	}
	pending := archive.PendingPath(livePath)
	if err := s.store.Put(ctx, pending, data, output.ContentType); err != nil {
		return "", storeErr("put", pending, err)
	}
	s.log(ctx).Info("submitted change request", logging.FieldPath, pending)
	return pending, nil
}

// Review pairs a change request with the record it would replace.
type Review struct {
	PendingPath string
	LivePath    string
	Pending     models.RowSet
	// Live is nil when the original record is gone.
	Live models.RowSet
}

// Review loads a change request and its live counterpart.
func (s *Service) Review(ctx context.Context, pendingPath string) (*Review, error) {
	if !archive.IsPending(pendingPath) {
		return nil, fmt.Errorf("review %s: %w", pendingPath, ErrNotPendingPath)
	}
	pending, err := s.loadPending(ctx, pendingPath)
	if err != nil {
		return nil, err
	}

	r := &Review{
		PendingPath: pendingPath,
		LivePath:    archive.LivePath(pendingPath),
		Pending:     pending,
	}
	live, err := s.Load(ctx, r.LivePath)
	switch {
	case err == nil:
		r.Live = live
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}
	return r, nil
}

// Approve replaces the live record with the change request and removes the
// request. Backends that implement store.Promoter do this in one step.
// Elsewhere a failure between the write and the delete leaves the request in
// place; approving or rejecting it again is safe.
func (s *Service) Approve(ctx context.Context, pendingPath string) (string, error) {
	if !archive.IsPending(pendingPath) {
		return "", fmt.Errorf("approve %s: %w", pendingPath, ErrNotPendingPath)
	}
	live := archive.LivePath(pendingPath)
	logger := s.log(ctx)

	if p, ok := s.store.(store.Promoter); ok {
		if err := p.Promote(ctx, pendingPath, live); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", fmt.Errorf("approve %s: %w", pendingPath, ErrPendingNotFound)
			}
			return "", storeErr("promote", pendingPath, err)
		}
		logger.Info("approved change request", logging.FieldPath, live)
		return live, nil
	}

	data, err := s.store.Get(ctx, pendingPath)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("approve %s: %w", pendingPath, ErrPendingNotFound)
	}
	if err != nil {
		return "", storeErr("get", pendingPath, err)
	}
	if err := s.store.Put(ctx, live, data, output.ContentType); err != nil {
		return "", storeErr("put", live, err)
	}
	if err := s.store.Delete(ctx, pendingPath); err != nil {
		return "", storeErr("delete", pendingPath, err)
	}
	logger.Info("approved change request", logging.FieldPath, live)
	return live, nil
}

// Reject discards a change request. Rejecting a missing request succeeds.
func (s *Service) Reject(ctx context.Context, pendingPath string) error {
	if !archive.IsPending(pendingPath) {
		return fmt.Errorf("reject %s: %w", pendingPath, ErrNotPendingPath)
	}
	if err := s.store.Delete(ctx, pendingPath); err != nil {
		return storeErr("delete", pendingPath, err)
	}
	s.log(ctx).Info("rejected change request", logging.FieldPath, pendingPath)
	return nil
}

func (s *Service) loadPending(ctx context.Context, pendingPath string) (models.RowSet, error) {
	rows, err := s.Load(ctx, pendingPath)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("review %s: %w", pendingPath, ErrPendingNotFound)
	}
	return rows, err
}
