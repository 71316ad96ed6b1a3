package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/archive"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/output"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

// BatteryCodes lists the battery folders at the top of the archive.
func (s *Service) BatteryCodes(ctx context.Context) ([]string, error) {
	codes, err := store.Folders(ctx, s.store, "")
	if err != nil {
		return nil, storeErr("list", "", err)
	}
	return codes, nil
}

// Files lists the live records of one data type for a battery.
func (s *Service) Files(ctx context.Context, code string, tag models.Tag) ([]string, error) {
	prefix := archive.Prefix(code, archive.Subfolder(tag))
	paths, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, storeErr("list", prefix, err)
	}
	var out []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".json") && !archive.IsPending(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Pending lists the change requests awaiting review for a battery, grouped
// by data type in tag order.
func (s *Service) Pending(ctx context.Context, code string) ([]models.PendingItem, error) {
	var items []models.PendingItem
	for _, tag := range models.Tags() {
		prefix := archive.Prefix(code, archive.Subfolder(tag)) + models.PendingDir + "/"
		paths, err := s.store.List(ctx, prefix)
		if err != nil {
			return nil, storeErr("list", prefix, err)
		}
		for _, p := range paths {
			sf, ok := archive.Parse(p)
			if !ok || !strings.HasSuffix(sf.Filename, ".json") {
				continue
			}
			items = append(items, models.PendingItem{Path: p, Tag: tag, Filename: sf.Filename})
		}
	}
	return items, nil
}

// Load reads and decodes a stored record. A missing blob is reported with
// store.ErrNotFound.
func (s *Service) Load(ctx context.Context, p string) (models.RowSet, error) {
	data, err := s.store.Get(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("get", p, err)
	}
	rows, err := output.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return rows, nil
}
