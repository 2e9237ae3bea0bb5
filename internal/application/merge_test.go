package application

import (
	"testing"

	"pricehistory-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMerge_SortsAndDedupes(t *testing.T) {
	existing := domain.Series{
		{Date: "2026-01-03", Price: "3.000000"},
		{Date: "2026-01-01", Price: "1.000000"},
	}
	incoming := domain.Series{
		{Date: "2026-01-02", Price: "2.000000"},
		{Date: "2026-01-03", Price: "9.000000"},
	}

	got := Merge(existing, incoming)
	require.Equal(t, domain.Series{
		{Date: "2026-01-01", Price: "1.000000"},
		{Date: "2026-01-02", Price: "2.000000"},
		{Date: "2026-01-03", Price: "3.000000"},
	}, got)
}

func TestMerge_Idempotent(t *testing.T) {
	existing := domain.Series{{Date: "2026-01-01", Price: "1.000000"}}
	incoming := domain.Series{
		{Date: "2026-01-02", Price: "2.000000"},
		{Date: "2026-01-01", Price: "1.000000"},
	}
	once := Merge(existing, incoming)
	twice := Merge(once, incoming)
	require.Equal(t, once, twice)
	require.Len(t, twice, 2)
}

func TestMerge_EmptyIncoming(t *testing.T) {
	s := domain.Series{
		{Date: "2026-01-02", Price: "2.000000"},
		{Date: "2026-01-01", Price: "1.000000"},
		{Date: "2026-01-02", Price: "7.000000"},
	}
	require.Equal(t, domain.Series{
		{Date: "2026-01-01", Price: "1.000000"},
		{Date: "2026-01-02", Price: "2.000000"},
	}, Merge(s, nil))
	require.Empty(t, Merge(nil, nil))
}
