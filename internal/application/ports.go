package application

import (
	"context"

	"pricehistory-service/internal/domain"
)

// BlobStore is a flat key-value slot holding one serialized series.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CandleSource serves daily candles and the current ticker price for a symbol.
type CandleSource interface {
	FetchCandles(ctx context.Context, symbol, interval string, startMs, endMs int64, limit int) ([]domain.Candle, error)
	FetchLatestPrice(ctx context.Context, symbol string) (string, error)
}

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
