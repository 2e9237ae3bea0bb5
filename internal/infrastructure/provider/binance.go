package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/domain"
	"pricehistory-service/internal/infrastructure/httpx"

	"go.uber.org/zap"
)

const (
	binanceKlinesPath = "/api/v3/klines"
	binanceTickerPath = "/api/v3/ticker/price"
	binanceMaxLimit   = 1000
)

// BinanceProvider reads public spot market data; no API key is needed.
type BinanceProvider struct {
	BaseURL string
	Client  *httpx.Client
	Log     *zap.Logger
}

var _ application.CandleSource = (*BinanceProvider)(nil)

type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (p *BinanceProvider) FetchCandles(ctx context.Context, symbol, interval string, startMs, endMs int64, limit int) ([]domain.Candle, error) {
	if !domain.ValidateSymbol(symbol) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSymbol, symbol)
	}
	if limit <= 0 || limit > binanceMaxLimit {
		limit = binanceMaxLimit
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("startTime", strconv.FormatInt(startMs, 10))
	q.Set("endTime", strconv.FormatInt(endMs, 10))
	q.Set("limit", strconv.Itoa(limit))

	var rows [][]json.RawMessage
	if err := p.get(ctx, binanceKlinesPath, q, &rows); err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	candles := make([]domain.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("binance klines: row %d has %d fields", i, len(row))
		}
		var openMs int64
		if err := json.Unmarshal(row[0], &openMs); err != nil {
			return nil, fmt.Errorf("binance klines: row %d open time: %w", i, err)
		}
		var open string
		if err := json.Unmarshal(row[1], &open); err != nil {
			return nil, fmt.Errorf("binance klines: row %d open price: %w", i, err)
		}
		candles = append(candles, domain.Candle{OpenTime: time.UnixMilli(openMs).UTC(), Open: open})
	}
	return candles, nil
}

func (p *BinanceProvider) FetchLatestPrice(ctx context.Context, symbol string) (string, error) {
	if !domain.ValidateSymbol(symbol) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedSymbol, symbol)
	}
	q := url.Values{}
	q.Set("symbol", symbol)

	var body binanceTicker
	if err := p.get(ctx, binanceTickerPath, q, &body); err != nil {
		return "", fmt.Errorf("binance ticker: %w", err)
	}
	if body.Price == "" {
		return "", errors.New("binance ticker: empty price")
	}
	return body.Price, nil
}

func (p *BinanceProvider) get(ctx context.Context, path string, q url.Values, out any) error {
	if p.BaseURL == "" {
		return errors.New("missing base url")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	u = u.JoinPath(path)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	log := p.Log
	if log != nil {
		log = log.With(zap.String("path", path))
	}
	return client.DoJSON(ctx, req, out, log)
}
