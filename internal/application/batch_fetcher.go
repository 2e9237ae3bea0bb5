package application

import (
	"context"
	"time"

	"pricehistory-service/internal/domain"

	"go.uber.org/zap"
)

const (
	CandleInterval      = "1d"
	DefaultWindowDays   = 1000
	DefaultWindowPause  = 200 * time.Millisecond
	maxCandlesPerWindow = 1000
)

// BatchFetcher pulls daily candles for a date range in windows the upstream
// can serve in one call.
type BatchFetcher struct {
	Source     CandleSource
	Symbol     string
	Earliest   time.Time
	WindowDays int
	Pause      time.Duration
	Log        *zap.Logger
}

// FetchRange returns the points for days in [start, end] that are not in seen.
// Every emitted date is added to seen. Failed windows are logged and skipped;
// the only error returned is the context's.
func (f *BatchFetcher) FetchRange(ctx context.Context, start, end time.Time, seen map[string]struct{}) ([]domain.PricePoint, error) {
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}
	windowDays := f.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if seen == nil {
		seen = map[string]struct{}{}
	}
	earliest := domain.Day(f.Earliest)
	start, end = domain.StartOfDay(start), domain.StartOfDay(end)

	var out []domain.PricePoint
	for windowStart := start; !windowStart.After(end); windowStart = windowStart.AddDate(0, 0, windowDays) {
		if !windowStart.Equal(start) {
			if err := sleepCtx(ctx, f.Pause); err != nil {
				return out, err
			}
		}
		windowEnd := windowStart.AddDate(0, 0, windowDays-1)
		if windowEnd.After(end) {
			windowEnd = end
		}
		wlog := log.With(
			zap.String("window_start", domain.Day(windowStart)),
			zap.String("window_end", domain.Day(windowEnd)),
		)

		candles, err := f.Source.FetchCandles(ctx, f.Symbol, CandleInterval,
			windowStart.UnixMilli(), domain.EndOfDay(windowEnd).UnixMilli(), maxCandlesPerWindow)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			wlog.Warn("sync.fetch_window_failed", zap.Error(err))
			continue
		}

		added := 0
		for _, c := range candles {
			p, err := c.PricePoint()
			if err != nil {
				wlog.Warn("sync.candle_skipped", zap.Error(err))
				continue
			}
			if _, dup := seen[p.Date]; dup || p.Date < earliest {
				continue
			}
			seen[p.Date] = struct{}{}
			out = append(out, p)
			added++
		}
		wlog.Debug("sync.fetch_window_done", zap.Int("candles", len(candles)), zap.Int("added", added))
	}
	return out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
