package stats

import (
	"time"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Tracker summarizes completion across the tracked range.
type Tracker struct {
	Completions    int
	DaysTracked    int
	CompletionRate float64
	CurrentStreak  int
	LongestStreak  int
}

// Track counts solved days between start and today. DaysTracked is at least one.
func Track(start, today time.Time, best calendar.DailyBest) Tracker {
	start = puzzle.Day(start)
	today = puzzle.Day(today)

	days := int(today.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	t := Tracker{
		Completions: len(best),
		DaysTracked: days,
	}
	t.CompletionRate = float64(t.Completions) / float64(t.DaysTracked) * 100

	run := 0
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		if _, ok := best.Lookup(day); ok {
			run++
			if run > t.LongestStreak {
				t.LongestStreak = run
			}
			continue
		}
		run = 0
	}

	// Today's puzzle may still be unsolved without breaking the streak.
	cursor := today
	if _, ok := best.Lookup(cursor); !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for !cursor.Before(start) {
		if _, ok := best.Lookup(cursor); !ok {
			break
		}
		t.CurrentStreak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return t
}
