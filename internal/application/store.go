package application

import (
	"context"
	"encoding/json"
	"fmt"

	"pricehistory-service/internal/domain"

	"go.uber.org/zap"
)

// SeriesStore keeps the whole series as one JSON blob under a single key.
type SeriesStore struct {
	blobs BlobStore
	key   string
	log   *zap.Logger
}

func NewSeriesStore(blobs BlobStore, key string, log *zap.Logger) *SeriesStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SeriesStore{blobs: blobs, key: key, log: log.With(zap.String("store_key", key))}
}

// Load returns the persisted series. A missing, unreadable or corrupt blob
// yields an empty series.
func (s *SeriesStore) Load(ctx context.Context) domain.Series {
	raw, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("store.load_failed", zap.Error(err))
		return domain.Series{}
	}
	if !ok || raw == "" {
		return domain.Series{}
	}
	var series domain.Series
	if err := json.Unmarshal([]byte(raw), &series); err != nil {
		s.log.Warn("store.decode_failed", zap.Error(err))
		return domain.Series{}
	}
	return series
}

// Save replaces the stored blob with the full series.
func (s *SeriesStore) Save(ctx context.Context, series domain.Series) error {
	if series == nil {
		series = domain.Series{}
	}
	b, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	if err := s.blobs.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save series: %w", err)
	}
	return nil
}

// Ping reports whether the underlying blob store is reachable.
func (s *SeriesStore) Ping(ctx context.Context) error {
	if p, ok := s.blobs.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
