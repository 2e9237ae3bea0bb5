package pg_test

import (
	"context"
	"testing"

	"pricehistory-service/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestBlobStore_GetSet(t *testing.T) {
	db := migratedDB(t)

	ctx := context.Background()
	store := pg.NewBlobStore(db)

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
