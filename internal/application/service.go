package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pricehistory-service/internal/domain"

	"go.uber.org/zap"
)

// PriceHistoryService keeps the stored daily series for one symbol up to date.
type PriceHistoryService struct {
	store          *SeriesStore
	source         CandleSource
	fetcher        *BatchFetcher
	lock           SyncLock
	clock          Clock
	log            *zap.Logger
	symbol         string
	startDate      time.Time
	resumeFromLast bool

	mu     sync.RWMutex
	status domain.SyncStatus
}

type Option func(*PriceHistoryService)

func WithClock(c Clock) Option { return func(s *PriceHistoryService) { s.clock = c } }
func WithLock(l SyncLock) Option { return func(s *PriceHistoryService) { s.lock = l } }
func WithLogger(l *zap.Logger) Option { return func(s *PriceHistoryService) { s.log = l } }
func WithWindowPause(d time.Duration) Option {
	return func(s *PriceHistoryService) { s.fetcher.Pause = d }
}

// WithResumeFromLast starts each fetch the day after the last stored date
// instead of at the configured start date.
func WithResumeFromLast(on bool) Option {
	return func(s *PriceHistoryService) { s.resumeFromLast = on }
}

func NewPriceHistoryService(store *SeriesStore, source CandleSource, symbol string, startDate time.Time, opts ...Option) *PriceHistoryService {
	s := &PriceHistoryService{
		store:     store,
		source:    source,
		symbol:    symbol,
		startDate: domain.StartOfDay(startDate),
		fetcher: &BatchFetcher{
			Source:     source,
			Symbol:     symbol,
			Earliest:   domain.StartOfDay(startDate),
			WindowDays: DefaultWindowDays,
			Pause:      DefaultWindowPause,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.lock == nil {
		s.lock = &LocalLock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("symbol", symbol))
	s.fetcher.Log = s.log
	s.status = domain.SyncStatus{State: domain.SyncStateIdle, UpdatedAt: s.clock.Now()}
	return s
}

func (s *PriceHistoryService) Symbol() string { return s.symbol }

// Series returns the best available stored data.
func (s *PriceHistoryService) Series(ctx context.Context) domain.Series {
	return s.store.Load(ctx)
}

// Latest returns the newest stored point, or ErrNotFound before the first sync.
func (s *PriceHistoryService) Latest(ctx context.Context) (domain.PricePoint, error) {
	p, ok := s.store.Load(ctx).Latest()
	if !ok {
		return domain.PricePoint{}, ErrNotFound
	}
	return p, nil
}

func (s *PriceHistoryService) Status() domain.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Ready reports whether the backing store is reachable.
func (s *PriceHistoryService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Sync loads the stored series and brings it up to date.
func (s *PriceHistoryService) Sync(ctx context.Context) (domain.Series, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.ensureFresh(ctx, s.store.Load(ctx))
}

// EnsureFresh fetches, merges and persists missing days when existing does
// not yet contain today's UTC date. Otherwise existing is returned unchanged.
func (s *PriceHistoryService) EnsureFresh(ctx context.Context, existing domain.Series) (domain.Series, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.ensureFresh(ctx, existing)
}

func (s *PriceHistoryService) acquire(ctx context.Context) (func(), error) {
	ok, release, err := s.lock.TryAcquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !ok {
		return nil, ErrSyncInProgress
	}
	return release, nil
}

func (s *PriceHistoryService) ensureFresh(ctx context.Context, existing domain.Series) (domain.Series, error) {
	now := s.clock.Now()
	today := domain.Day(now)
	s.setState(domain.SyncStateChecking, existing, 0, nil)

	last, ok := existing.Latest()
	if ok && last.Date >= today {
		s.log.Debug("sync.fresh", zap.String("last_stored_date", last.Date))
		s.setState(domain.SyncStateIdle, existing, 0, nil)
		return existing, nil
	}

	from := s.startDate
	if ok && s.resumeFromLast {
		if d, err := domain.ParseDay(last.Date); err == nil && d.AddDate(0, 0, 1).After(from) {
			from = d.AddDate(0, 0, 1)
		}
	}
	log := s.log.With(zap.String("from", domain.Day(from)), zap.String("to", today))
	log.Info("sync.fetch_start")
	s.setState(domain.SyncStateFetching, existing, 0, nil)

	seen := existing.Dates()
	incoming, err := s.fetcher.FetchRange(ctx, from, now, seen)
	if err != nil {
		return s.fail(existing, fmt.Errorf("fetch range: %w", err))
	}
	if _, have := seen[today]; !have {
		if p, ok := s.latestPoint(ctx, today); ok {
			incoming = append(incoming, p)
		}
	}

	s.setState(domain.SyncStateMerging, existing, 0, nil)
	merged := Merge(existing, incoming)
	if err := s.store.Save(ctx, merged); err != nil {
		return s.fail(existing, err)
	}
	added := len(merged) - len(existing)
	log.Info("sync.persisted", zap.Int("points_added", added), zap.Int("points_total", len(merged)))
	s.setState(domain.SyncStatePersisted, merged, added, nil)
	return merged, nil
}

// latestPoint covers today when no daily candle has been published yet.
func (s *PriceHistoryService) latestPoint(ctx context.Context, today string) (domain.PricePoint, bool) {
	raw, err := s.source.FetchLatestPrice(ctx, s.symbol)
	if err != nil {
		s.log.Warn("sync.latest_price_failed", zap.Error(err))
		return domain.PricePoint{}, false
	}
	price, err := domain.FormatPrice(raw)
	if err != nil {
		s.log.Warn("sync.latest_price_invalid", zap.Error(err))
		return domain.PricePoint{}, false
	}
	return domain.PricePoint{Date: today, Price: price}, true
}

func (s *PriceHistoryService) fail(existing domain.Series, err error) (domain.Series, error) {
	s.log.Error("sync.failed", zap.Error(err))
	s.setState(domain.SyncStateFailed, existing, 0, err)
	return nil, err
}

func (s *PriceHistoryService) setState(state domain.SyncState, series domain.Series, added int, err error) {
	st := domain.SyncStatus{State: state, PointsAdded: added, UpdatedAt: s.clock.Now()}
	if last, ok := series.Latest(); ok {
		st.LastStoredDate = last.Date
	}
	if err != nil {
		msg := err.Error()
		st.Error = &msg
	}
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
