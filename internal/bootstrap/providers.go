package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/config"
	"pricehistory-service/internal/domain"
	infraconfig "pricehistory-service/internal/infrastructure/config"
	"pricehistory-service/internal/infrastructure/httpx"
	"pricehistory-service/internal/infrastructure/logx"
	"pricehistory-service/internal/infrastructure/memstore"
	"pricehistory-service/internal/infrastructure/pg"
	"pricehistory-service/internal/infrastructure/provider"
	redisstore "pricehistory-service/internal/infrastructure/redis"
	"pricehistory-service/internal/infrastructure/sqlite"
	"pricehistory-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const fakeBasePrice = 30000.0

func ProvideConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// ProvideLogger installs a logger at cfg.LogLevel as the process default.
func ProvideLogger(cfg config.Config) (*zap.Logger, error) {
	l, err := logx.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logx.SetDefault(l)
	return l, nil
}

// ProvideRedisClient returns nil when neither storage nor lock uses Redis.
func ProvideRedisClient(cfg config.Config) (*redis.Client, func()) {
	if cfg.Storage != "redis" && cfg.LockBackend != "redis" {
		return nil, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	return rdb, func() { _ = rdb.Close() }
}

func ProvideBlobStore(ctx context.Context, cfg config.Config, rdb *redis.Client, log *zap.Logger) (application.BlobStore, func(), error) {
	switch cfg.Storage {
	case "sqlite":
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		cleanup := func() {
			log.Info("closing sqlite")
			_ = s.Close()
		}
		return s, cleanup, nil
	case "redis":
		if rdb == nil {
			return nil, func() {}, fmt.Errorf("redis client is required for STORAGE=redis")
		}
		return redisstore.New(rdb), func() {}, nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, func() {}, fmt.Errorf("DATABASE_URL is required for STORAGE=pg")
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return pg.NewBlobStore(db), cleanup, nil
	case "memory":
		return memstore.New(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func ProvideCandleSource(cfg config.Config, log *zap.Logger) (application.CandleSource, error) {
	switch cfg.Provider {
	case "binance":
		return &provider.BinanceProvider{
			BaseURL: cfg.BinanceBaseURL,
			Client: &httpx.Client{
				HTTP:           &http.Client{Timeout: cfg.RequestTimeout},
				MaxElapsedTime: infraconfig.DefaultUpstreamRetry,
			},
			Log: log.Named("binance"),
		}, nil
	case "fake":
		return provider.NewFake(fakeBasePrice), nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideLock(cfg config.Config, rdb *redis.Client, log *zap.Logger) (application.SyncLock, error) {
	switch cfg.LockBackend {
	case "", "local":
		return &application.LocalLock{}, nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis client is required for LOCK_BACKEND=redis")
		}
		l := redisstore.NewLock(rdb, cfg.StoreKey+":sync-lock", cfg.LockTTL)
		l.Log = log.Named("lock")
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported LOCK_BACKEND=%q", cfg.LockBackend)
	}
}

func ProvideService(cfg config.Config, blobs application.BlobStore, source application.CandleSource, lock application.SyncLock, log *zap.Logger) (*application.PriceHistoryService, error) {
	if !domain.ValidateSymbol(cfg.Symbol) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSymbol, cfg.Symbol)
	}
	start, err := domain.ParseDay(cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("START_DATE: %w", err)
	}
	store := application.NewSeriesStore(blobs, cfg.StoreKey, log.Named("store"))
	return application.NewPriceHistoryService(store, source, cfg.Symbol, start,
		application.WithLock(lock),
		application.WithLogger(log.Named("sync")),
		application.WithResumeFromLast(cfg.ResumeFromLast),
	), nil
}

func ProvideWorker(cfg config.Config, svc *application.PriceHistoryService, log *zap.Logger) *worker.DailyWorker {
	wlog := log.Named("worker")
	return &worker.DailyWorker{
		Service:    svc,
		Scheduler:  worker.NewScheduler(wlog),
		RunOnStart: cfg.RunOnStart,
		Log:        wlog,
	}
}

// ShutdownContext bounds graceful shutdown of servers and workers.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
}
