package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"pricehistory-service/internal/infrastructure/sqlite"

	"github.com/stretchr/testify/require"
)

func TestBlobStore_GetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "slots.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	_, ok, err := store.Get(ctx, "price-history")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "price-history", `[{"date":"2026-01-01","price":"1.000000"}]`))
	require.NoError(t, store.Set(ctx, "price-history", `[]`))

	v, ok, err := store.Get(ctx, "price-history")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)
	require.NoError(t, store.Ping(ctx))
}

func TestBlobStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v)
}
