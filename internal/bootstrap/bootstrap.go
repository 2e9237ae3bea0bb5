package bootstrap

import (
	"context"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/config"
	"pricehistory-service/internal/infrastructure/worker"

	"go.uber.org/zap"
)

// App holds everything a binary needs to run.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Service *application.PriceHistoryService
	Worker  *worker.DailyWorker
}

// Build wires the service from cfg. Cleanups run in reverse order of
// acquisition and are safe to call when Build fails.
func Build(ctx context.Context, cfg config.Config) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	log, err := ProvideLogger(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	rdb, closeRedis := ProvideRedisClient(cfg)
	cleanups = append(cleanups, closeRedis)

	blobs, closeStore, err := ProvideBlobStore(ctx, cfg, rdb, log)
	cleanups = append(cleanups, closeStore)
	if err != nil {
		return nil, cleanup, err
	}
	source, err := ProvideCandleSource(cfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	lock, err := ProvideLock(cfg, rdb, log)
	if err != nil {
		return nil, cleanup, err
	}
	svc, err := ProvideService(cfg, blobs, source, lock, log)
	if err != nil {
		return nil, cleanup, err
	}

	log.Info("bootstrap.ready",
		zap.String("symbol", cfg.Symbol),
		zap.String("storage", cfg.Storage),
		zap.String("provider", cfg.Provider),
		zap.String("lock", cfg.LockBackend),
	)
	return &App{
		Config:  cfg,
		Log:     log,
		Service: svc,
		Worker:  ProvideWorker(cfg, svc, log),
	}, cleanup, nil
}
