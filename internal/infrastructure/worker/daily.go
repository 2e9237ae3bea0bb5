package worker

import (
	"context"
	"errors"
	"sync"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/domain"
	infraconfig "pricehistory-service/internal/infrastructure/config"

	"go.uber.org/zap"
)

var _ application.Worker = (*DailyWorker)(nil)

// Syncer is the part of the service the worker drives.
type Syncer interface {
	Sync(ctx context.Context) (domain.Series, error)
}

// DailyWorker runs a sync cycle at every UTC midnight until ctx is canceled.
type DailyWorker struct {
	Service    Syncer
	Scheduler  *Scheduler
	RunOnStart bool
	Log        *zap.Logger
}

func (w *DailyWorker) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	sched := w.Scheduler
	if sched == nil {
		sched = NewScheduler(log)
	}

	id := sched.Arm(func() { w.runOnce(ctx, log) })
	sched.Start()
	log.Info("daily_worker_started", zap.Time("next_run", sched.NextRun(id)))

	var startup sync.WaitGroup
	if w.RunOnStart {
		startup.Add(1)
		go func() {
			defer startup.Done()
			w.runOnce(ctx, log)
		}()
	}

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer cancel()
	sched.Stop(stopCtx)
	// callers close the store after Start returns
	startup.Wait()
	log.Info("daily_worker_stopped")
}

func (w *DailyWorker) runOnce(ctx context.Context, log *zap.Logger) {
	if ctx.Err() != nil {
		return
	}
	series, err := w.Service.Sync(ctx)
	switch {
	case errors.Is(err, application.ErrSyncInProgress):
		log.Info("daily_worker.skipped_in_flight")
	case err != nil:
		log.Warn("daily_worker.sync_failed", zap.Error(err))
	default:
		log.Info("daily_worker.sync_done", zap.Int("points", len(series)))
	}
}
