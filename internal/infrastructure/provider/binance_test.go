package provider_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"pricehistory-service/internal/domain"
	"pricehistory-service/internal/infrastructure/httpx"
	"pricehistory-service/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(code int, body string, seen *[]*http.Request) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) *http.Response {
			if seen != nil {
				*seen = append(*seen, r)
			}
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}}
}

const sampleKlines = `[
  [1767225600000, "0.12345600", "0.13000000", "0.12000000", "0.12500000", "1000.0", 1767311999999, "125.0", 10, "500.0", "62.5", "0"],
  [1767312000000, "0.12500000", "0.13100000", "0.12100000", "0.13000000", "900.0", 1767398399999, "117.0", 8, "450.0", "58.5", "0"]
]`

func TestFetchCandles(t *testing.T) {
	var seen []*http.Request
	p := &provider.BinanceProvider{BaseURL: "https://api.binance.com", Client: httpClient(200, sampleKlines, &seen)}

	candles, err := p.FetchCandles(context.Background(), "BTCUSDT", "1d", 1767225600000, 1767398399999, 1000)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), candles[0].OpenTime)
	require.Equal(t, "0.12345600", candles[0].Open)

	p0, err := candles[0].PricePoint()
	require.NoError(t, err)
	require.Equal(t, domain.PricePoint{Date: "2026-01-01", Price: "0.123456"}, p0)

	require.Len(t, seen, 1)
	q := seen[0].URL.Query()
	require.Equal(t, "/api/v3/klines", seen[0].URL.Path)
	require.Equal(t, "BTCUSDT", q.Get("symbol"))
	require.Equal(t, "1d", q.Get("interval"))
	require.Equal(t, "1767225600000", q.Get("startTime"))
	require.Equal(t, "1767398399999", q.Get("endTime"))
	require.Equal(t, "1000", q.Get("limit"))
}

func TestFetchCandles_Empty(t *testing.T) {
	p := &provider.BinanceProvider{BaseURL: "https://api.binance.com", Client: httpClient(200, `[]`, nil)}
	candles, err := p.FetchCandles(context.Background(), "BTCUSDT", "1d", 0, 1, 1000)
	require.NoError(t, err)
	require.Empty(t, candles)
}

func TestFetchCandles_APIError(t *testing.T) {
	p := &provider.BinanceProvider{
		BaseURL: "https://api.binance.com",
		Client:  httpClient(400, `{"code":-1121,"msg":"Invalid symbol."}`, nil),
	}
	_, err := p.FetchCandles(context.Background(), "NOPEUSDT", "1d", 0, 1, 1000)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestFetchCandles_MalformedRow(t *testing.T) {
	p := &provider.BinanceProvider{BaseURL: "https://api.binance.com", Client: httpClient(200, `[[1767225600000]]`, nil)}
	_, err := p.FetchCandles(context.Background(), "BTCUSDT", "1d", 0, 1, 1000)
	require.Error(t, err)
}

func TestFetchCandles_UnsupportedSymbol(t *testing.T) {
	p := &provider.BinanceProvider{BaseURL: "https://api.binance.com", Client: httpClient(200, `[]`, nil)}
	_, err := p.FetchCandles(context.Background(), "btc/usdt", "1d", 0, 1, 1000)
	require.ErrorIs(t, err, domain.ErrUnsupportedSymbol)
}

func TestFetchLatestPrice(t *testing.T) {
	var seen []*http.Request
	p := &provider.BinanceProvider{
		BaseURL: "https://api.binance.com",
		Client:  httpClient(200, `{"symbol":"BTCUSDT","price":"97000.12000000"}`, &seen),
	}
	price, err := p.FetchLatestPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.Equal(t, "97000.12000000", price)
	require.Equal(t, "/api/v3/ticker/price", seen[0].URL.Path)
}

func TestFake_OneCandlePerDay(t *testing.T) {
	f := provider.NewFake(1.2345)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)
	candles, err := f.FetchCandles(context.Background(), "BTCUSDT", "1d", start.UnixMilli(), end.UnixMilli(), 1000)
	require.NoError(t, err)
	require.Len(t, candles, 10)
	for _, c := range candles {
		_, err := c.PricePoint()
		require.NoError(t, err)
	}
}

func TestBinance_KeepsBaseURLPathPrefix(t *testing.T) {
	var seen []*http.Request
	p := &provider.BinanceProvider{
		BaseURL: "https://proxy.internal/binance/",
		Client:  httpClient(200, `{"symbol":"BTCUSDT","price":"1.0"}`, &seen),
	}
	_, err := p.FetchLatestPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, seen, 1)
	require.Equal(t, "/binance/api/v3/ticker/price", seen[0].URL.Path)
	require.Equal(t, "BTCUSDT", seen[0].URL.Query().Get("symbol"))
}
