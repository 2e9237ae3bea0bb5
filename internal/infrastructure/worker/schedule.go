package worker

import (
	"time"

	"github.com/robfig/cron/v3"
)

// NextUTCMidnight returns the first UTC day boundary strictly after now.
func NextUTCMidnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

// UntilNextUTCMidnight is the delay from now to NextUTCMidnight(now).
func UntilNextUTCMidnight(now time.Time) time.Duration {
	return NextUTCMidnight(now).Sub(now)
}

// DailyUTC fires at every UTC midnight. Each activation is computed from the
// time the previous one ran, so late firings never accumulate drift.
type DailyUTC struct{}

var _ cron.Schedule = DailyUTC{}

func (DailyUTC) Next(t time.Time) time.Time { return NextUTCMidnight(t) }
