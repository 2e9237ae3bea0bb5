package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCandle_PricePoint(t *testing.T) {
	c := Candle{OpenTime: time.UnixMilli(1767225600000), Open: "0.123456"}
	p, err := c.PricePoint()
	require.NoError(t, err)
	require.Equal(t, PricePoint{Date: "2026-01-01", Price: "0.123456"}, p)
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"0.12345600", "0.123456"},
		{"42000.1", "42000.100000"},
		{"1", "1.000000"},
		{"0.0000001", "0.000000"},
	}
	for _, c := range cases {
		got, err := FormatPrice(c.in)
		require.NoError(t, err)
		require.Equal(t, c.out, got, c.in)
	}

	_, err := FormatPrice("abc")
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDayHelpers(t *testing.T) {
	ts := time.Date(2026, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	require.Equal(t, "2026-03-11", Day(ts))

	d, err := ParseDay("2026-03-10")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d)
	require.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), EndOfDay(d))
	require.Equal(t, d, StartOfDay(d.Add(13*time.Hour)))

	_, err = ParseDay("10/03/2026")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestSeries_LatestAndDescending(t *testing.T) {
	var empty Series
	_, ok := empty.Latest()
	require.False(t, ok)

	s := Series{
		{Date: "2026-01-01", Price: "1.000000"},
		{Date: "2026-01-02", Price: "2.000000"},
		{Date: "2026-01-03", Price: "3.000000"},
	}
	latest, ok := s.Latest()
	require.True(t, ok)
	require.Equal(t, "2026-01-03", latest.Date)
	require.Len(t, s.Dates(), 3)

	desc := s.Descending()
	require.Equal(t, "2026-01-03", desc[0].Date)
	require.Equal(t, "2026-01-01", desc[2].Date)
	require.Equal(t, "2026-01-01", s[0].Date)
}

func TestValidateSymbol(t *testing.T) {
	require.True(t, ValidateSymbol("BTCUSDT"))
	require.False(t, ValidateSymbol("btcusdt"))
	require.False(t, ValidateSymbol("BTC/USDT"))
}
