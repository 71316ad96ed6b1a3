package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(*testing.T) store.Store { return New() })
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx, "48/temp/a.json", []byte("abc"), "application/json"))

	data, err := s.Get(ctx, "48/temp/a.json")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := s.Get(ctx, "48/temp/a.json")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, "application/json", s.ContentType("48/temp/a.json"))
	assert.Equal(t, 1, s.Len())
}
