package pg_test

import (
	"context"
	"os"
	"testing"
	"time"

	"pricehistory-service/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const containerStartTimeout = 2 * time.Minute

// migratedDB starts a throwaway Postgres, applies migrations and registers
// teardown with t.Cleanup. Skipped unless TESTCONTAINERS is set.
func migratedDB(t *testing.T) *pg.DB {
	t.Helper()
	if os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("TESTCONTAINERS not set; skipping Postgres container test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), containerStartTimeout)
	defer cancel()

	pgc, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("pricehistory"),
		postgres.WithUsername("pricehistory"),
		postgres.WithPassword("pricehistory"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgc.Terminate(context.Background()) })

	dsn, err := pgc.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, pg.RunMigrations(ctx, db))
	// second run must be a no-op
	require.NoError(t, pg.RunMigrations(ctx, db))
	return db
}
