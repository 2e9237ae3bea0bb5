package domain

import "time"

// Candle is one daily kline from the upstream source. Only the open time and
// the open price are used.
type Candle struct {
	OpenTime time.Time
	Open     string
}

// PricePoint converts the candle into the stored representation.
func (c Candle) PricePoint() (PricePoint, error) {
	price, err := FormatPrice(c.Open)
	if err != nil {
		return PricePoint{}, err
	}
	return PricePoint{Date: Day(c.OpenTime), Price: price}, nil
}
