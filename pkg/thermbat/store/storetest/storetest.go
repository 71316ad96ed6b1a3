// Package storetest holds the behavior every store.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

// Run exercises a fresh store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(context.Background(), "48/temp/missing.json")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("PutGetOverwrite", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		p := "48/temp/TempData_1_20240101_000000.json"

		require.NoError(t, s.Put(ctx, p, []byte(`[{"a":1}]`), "application/json"))
		data, err := s.Get(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, `[{"a":1}]`, string(data))

		require.NoError(t, s.Put(ctx, p, []byte(`[{"a":2}]`), "application/json"))
		data, err = s.Get(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, `[{"a":2}]`, string(data))
	})

	t.Run("Exists", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		ok, err := s.Exists(ctx, "48/temp/a.json")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Put(ctx, "48/temp/a.json", []byte("[]"), ""))
		ok, err = s.Exists(ctx, "48/temp/a.json")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ListByPrefix", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		for _, p := range []string{
			"48/temp/b.json",
			"48/temp/a.json",
			"48/design_data/c.json",
			"480/temp/d.json",
			"52/temp/e.json",
		} {
			require.NoError(t, s.Put(ctx, p, []byte("[]"), ""))
		}

		got, err := s.List(ctx, "48/")
		require.NoError(t, err)
		assert.Equal(t, []string{"48/design_data/c.json", "48/temp/a.json", "48/temp/b.json"}, got)

		got, err = s.List(ctx, "48/temp/")
		require.NoError(t, err)
		assert.Equal(t, []string{"48/temp/a.json", "48/temp/b.json"}, got)

		got, err = s.List(ctx, "99/")
		require.NoError(t, err)
		assert.Empty(t, got)

		folders, err := store.Folders(ctx, s, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"48", "480", "52"}, folders)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		require.NoError(t, s.Put(ctx, "48/temp/a.json", []byte("[]"), ""))
		require.NoError(t, s.Delete(ctx, "48/temp/a.json"))
		require.NoError(t, s.Delete(ctx, "48/temp/a.json"))

		ok, err := s.Exists(ctx, "48/temp/a.json")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PutRejectsInvalidPath", func(t *testing.T) {
		s := open(t)
		for _, p := range []string{"", "/abs.json", "48//a.json", "48/../a.json"} {
			assert.Error(t, s.Put(context.Background(), p, []byte("[]"), ""), "path %q", p)
		}
	})

	t.Run("Promote", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		promoter, ok := s.(store.Promoter)
		if !ok {
			t.Skip("backend does not implement store.Promoter")
		}
		pending := "48/temp/_pending_approvals/a.json"
		live := "48/temp/a.json"
		require.NoError(t, s.Put(ctx, live, []byte("old"), ""))
		require.NoError(t, s.Put(ctx, pending, []byte("new"), ""))

		require.NoError(t, promoter.Promote(ctx, pending, live))

		data, err := s.Get(ctx, live)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		ok, err = s.Exists(ctx, pending)
		require.NoError(t, err)
		assert.False(t, ok)

		err = promoter.Promote(ctx, pending, live)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
