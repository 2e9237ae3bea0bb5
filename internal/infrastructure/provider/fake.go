package provider

import (
	"context"
	"time"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.CandleSource.
var _ application.CandleSource = (*Fake)(nil)

// Fake serves one deterministic candle per day, for local runs without network.
type Fake struct {
	price decimal.Decimal
}

func NewFake(price float64) *Fake { return &Fake{price: decimal.NewFromFloat(price)} }

func (f *Fake) FetchCandles(_ context.Context, _, _ string, startMs, endMs int64, limit int) ([]domain.Candle, error) {
	now := time.Now().UTC()
	var out []domain.Candle
	for d := domain.StartOfDay(time.UnixMilli(startMs)); d.UnixMilli() <= endMs && !d.After(now) && len(out) < limit; d = d.AddDate(0, 0, 1) {
		out = append(out, domain.Candle{OpenTime: d, Open: f.priceOn(d)})
	}
	return out, nil
}

func (f *Fake) FetchLatestPrice(context.Context, string) (string, error) {
	return f.priceOn(time.Now().UTC()), nil
}

// priceOn drifts by day of year so the table is not flat.
func (f *Fake) priceOn(d time.Time) string {
	step := decimal.NewFromInt(int64(d.YearDay())).Div(decimal.NewFromInt(1000))
	return f.price.Mul(decimal.NewFromInt(1).Add(step)).String()
}
