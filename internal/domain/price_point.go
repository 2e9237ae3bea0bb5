package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceDecimals is the number of fractional digits kept for every price.
const PriceDecimals = 6

type PricePoint struct {
	Date  string `json:"date"`
	Price string `json:"price"`
}

// FormatPrice normalizes a decimal string to exactly PriceDecimals fractional digits.
func FormatPrice(raw string) (string, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return d.StringFixed(PriceDecimals), nil
}
