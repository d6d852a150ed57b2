package calendar

import (
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

// DailyBest maps a YYYY-MM-DD key to the fastest time logged that day.
type DailyBest map[string]int

// DailyBests reduces records to the minimum duration per date.
func DailyBests(records []puzzle.Record) DailyBest {
	best := make(DailyBest, len(records))
	for _, rec := range records {
		key := rec.Key()
		if current, ok := best[key]; !ok || rec.Seconds < current {
			best[key] = rec.Seconds
		}
	}
	return best
}

// Lookup returns the best time for the date, if any.
func (d DailyBest) Lookup(date time.Time) (int, bool) {
	seconds, ok := d[puzzle.DateKey(date)]
	return seconds, ok
}
