package application

import (
	"context"
	"sync"
)

// SyncLock guards the single in-flight synchronization slot.
type SyncLock interface {
	// TryAcquire returns true if the slot was free and is now held.
	// The returned release func must be called exactly once when acquired.
	TryAcquire(ctx context.Context) (bool, func(), error)
}

// LocalLock is an in-process SyncLock.
type LocalLock struct {
	mu sync.Mutex
}

func (l *LocalLock) TryAcquire(context.Context) (bool, func(), error) {
	if !l.mu.TryLock() {
		return false, func() {}, nil
	}
	return true, l.mu.Unlock, nil
}
