package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pricehistory-service/internal/bootstrap"
	"pricehistory-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	cfg, err := bootstrap.ProvideConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		cleanup()
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()

	app.Worker.Start(ctx)
	log.Info("worker stopped")
}
