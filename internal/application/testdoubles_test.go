package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pricehistory-service/internal/domain"
)

var (
	ErrRepo     = errors.New("repo error")
	ErrUpstream = errors.New("upstream error")
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeBlobStore struct {
	mu     sync.Mutex
	blobs  map[string]string
	getErr error
	setErr error
	sets   int
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.blobs[key]
	return v, ok, nil
}

func (f *fakeBlobStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.blobs == nil {
		f.blobs = map[string]string{}
	}
	f.blobs[key] = value
	f.sets++
	return nil
}

type window struct{ startMs, endMs int64 }

// fakeSource serves one candle per day between first and last (inclusive).
type fakeSource struct {
	mu          sync.Mutex
	first, last time.Time
	failCalls   map[int]bool
	latest      string
	latestErr   error
	calls       []window
	block       chan struct{}
}

func (f *fakeSource) FetchCandles(_ context.Context, _, _ string, startMs, endMs int64, limit int) ([]domain.Candle, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, window{startMs, endMs})
	if f.failCalls[len(f.calls)] {
		return nil, fmt.Errorf("window %d: %w", len(f.calls), ErrUpstream)
	}
	var out []domain.Candle
	for d := time.UnixMilli(startMs).UTC(); d.UnixMilli() <= endMs && len(out) < limit; d = d.AddDate(0, 0, 1) {
		if d.Before(f.first) || d.After(f.last) {
			continue
		}
		out = append(out, domain.Candle{OpenTime: d, Open: priceFor(d)})
	}
	return out, nil
}

func (f *fakeSource) FetchLatestPrice(context.Context, string) (string, error) {
	if f.latestErr != nil {
		return "", f.latestErr
	}
	return f.latest, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func priceFor(d time.Time) string {
	return fmt.Sprintf("%d.%02d", d.Day(), int(d.Month()))
}

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
