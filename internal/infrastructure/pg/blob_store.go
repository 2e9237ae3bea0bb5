package pg

import (
	"context"
	"errors"

	"pricehistory-service/internal/application"

	"github.com/jackc/pgx/v5"
)

var _ application.BlobStore = (*BlobStore)(nil)

// BlobStore maps each slot to one row of kv_slots.
type BlobStore struct{ db *DB }

func NewBlobStore(db *DB) *BlobStore { return &BlobStore{db: db} }

func (s *BlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_slots WHERE key=$1`
	var v string
	err := s.db.Pool.QueryRow(ctx, q, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *BlobStore) Set(ctx context.Context, key, value string) error {
	const up = `
        INSERT INTO kv_slots(key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
          SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`
	_, err := s.db.Pool.Exec(ctx, up, key, value)
	return err
}

func (s *BlobStore) Ping(ctx context.Context) error { return s.db.Ping(ctx) }
