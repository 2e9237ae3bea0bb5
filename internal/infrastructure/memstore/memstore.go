package memstore

import (
	"context"
	"sync"

	"pricehistory-service/internal/application"
)

var _ application.BlobStore = (*Store)(nil)

// Store is a process-local BlobStore for development; contents are lost on exit.
type Store struct {
	mu    sync.RWMutex
	slots map[string]string
}

func New() *Store { return &Store{slots: map[string]string{}} }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}
