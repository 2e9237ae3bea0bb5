package application

import (
	"slices"
	"strings"

	"pricehistory-service/internal/domain"
)

// Merge concatenates existing and incoming, sorts ascending by date and drops
// later points whose date was already seen. Existing points win ties.
func Merge(existing, incoming domain.Series) domain.Series {
	all := make(domain.Series, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	slices.SortStableFunc(all, func(a, b domain.PricePoint) int {
		return strings.Compare(a.Date, b.Date)
	})

	out := all[:0]
	for i, p := range all {
		if i > 0 && p.Date == out[len(out)-1].Date {
			continue
		}
		out = append(out, p)
	}
	return out
}
