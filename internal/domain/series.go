package domain

// Series is a date-ordered sequence of price points. The canonical order is
// ascending by date with at most one point per date.
type Series []PricePoint

// Latest returns the point with the greatest date.
func (s Series) Latest() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	latest := s[0]
	for _, p := range s[1:] {
		if p.Date > latest.Date {
			latest = p
		}
	}
	return latest, true
}

// Dates returns the set of dates present in the series.
func (s Series) Dates() map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for _, p := range s {
		out[p.Date] = struct{}{}
	}
	return out
}

// Descending returns a copy in display order, newest first.
func (s Series) Descending() Series {
	out := make(Series, len(s))
	for i, p := range s {
		out[len(s)-1-i] = p
	}
	return out
}
