package redisstore

import (
	"context"
	"errors"

	"pricehistory-service/internal/application"

	"github.com/redis/go-redis/v9"
)

var _ application.BlobStore = (*BlobStore)(nil)

// BlobStore keeps each slot as a plain string key without expiry.
type BlobStore struct {
	Client *redis.Client
}

func New(client *redis.Client) *BlobStore {
	return &BlobStore{Client: client}
}

func (s *BlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *BlobStore) Set(ctx context.Context, key, value string) error {
	return s.Client.Set(ctx, key, value, 0).Err()
}

func (s *BlobStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
