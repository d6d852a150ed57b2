// Package report shapes domain values into the JSON documents shared by
// `--json` CLI output and the HTTP API.
package report

import (
	"time"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/stats"
)

const monthLayout = "2006-01"

// Entry is a single logged time.
type Entry struct {
	ID          int64  `json:"id,omitempty"`
	Date        string `json:"date"`
	TimeSeconds int    `json:"time_seconds"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url"`
}

// NewEntry converts a record.
func NewEntry(rec puzzle.Record) Entry {
	return Entry{
		ID:          rec.ID,
		Date:        rec.Key(),
		TimeSeconds: rec.Seconds,
		Source:      string(rec.Source),
		URL:         puzzle.PuzzleURL(rec.Date),
	}
}

func newEntries(records []puzzle.Record) []Entry {
	out := make([]Entry, 0, len(records))
	for _, rec := range records {
		out = append(out, NewEntry(rec))
	}
	return out
}

// Summary mirrors stats.Summary.
type Summary struct {
	TotalPuzzles   int     `json:"total_puzzles"`
	AverageSeconds float64 `json:"average_time"`
	TotalSeconds   int     `json:"total_time"`
}

// Period is one weekly or monthly average.
type Period struct {
	Period         string  `json:"period"`
	AverageSeconds float64 `json:"average_time"`
	Count          int     `json:"count"`
}

// Band is one slice of the time distribution.
type Band struct {
	Range   string  `json:"range"`
	Count   int     `json:"count"`
	Percent float64 `json:"percentage"`
}

// TrackerStats mirrors stats.Tracker.
type TrackerStats struct {
	Completions    int     `json:"completions"`
	DaysTracked    int     `json:"days_tracked"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
}

// Dashboard is the JSON form of stats.Dashboard.
type Dashboard struct {
	Summary      Summary      `json:"summary"`
	Weekly       []Period     `json:"weekly"`
	Monthly      []Period     `json:"monthly"`
	Fastest      []Entry      `json:"fastest"`
	Slowest      []Entry      `json:"slowest"`
	Distribution []Band       `json:"distribution"`
	Tracker      TrackerStats `json:"tracker"`
}

// NewDashboard converts a computed dashboard.
func NewDashboard(d stats.Dashboard) Dashboard {
	out := Dashboard{
		Summary: Summary{
			TotalPuzzles:   d.Summary.TotalPuzzles,
			AverageSeconds: d.Summary.AverageSeconds,
			TotalSeconds:   d.Summary.TotalSeconds,
		},
		Weekly:       newPeriods(d.Weekly, puzzle.DateLayout),
		Monthly:      newPeriods(d.Monthly, monthLayout),
		Fastest:      newEntries(d.Fastest),
		Slowest:      newEntries(d.Slowest),
		Distribution: make([]Band, 0, len(d.Distribution)),
		Tracker:      NewTrackerStats(d.Tracker),
	}
	for _, b := range d.Distribution {
		out.Distribution = append(out.Distribution, Band{Range: b.Label, Count: b.Count, Percent: b.Percent})
	}
	return out
}

func newPeriods(buckets []stats.Bucket, layout string) []Period {
	out := make([]Period, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Period{
			Period:         b.Period.Format(layout),
			AverageSeconds: b.AverageSeconds,
			Count:          b.Count,
		})
	}
	return out
}

// NewTrackerStats converts completion stats.
func NewTrackerStats(t stats.Tracker) TrackerStats {
	return TrackerStats{
		Completions:    t.Completions,
		DaysTracked:    t.DaysTracked,
		CompletionRate: t.CompletionRate,
		CurrentStreak:  t.CurrentStreak,
		LongestStreak:  t.LongestStreak,
	}
}

// Cell is one heatmap square. TimeSeconds is omitted when nothing was logged.
type Cell struct {
	Date        string `json:"date"`
	Active      bool   `json:"active"`
	Level       int    `json:"level"`
	TimeSeconds *int   `json:"time_seconds,omitempty"`
}

// Grid is a calendar grid with its range.
type Grid struct {
	Year        int      `json:"year,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	MonthLabels []string `json:"month_labels"`
	Weeks       [][]Cell `json:"weeks"`
}

// Tracker is the full streak view: one or more grids plus completion stats.
type Tracker struct {
	Grids []Grid       `json:"grids"`
	Stats TrackerStats `json:"stats"`
}

// NewGrid converts a calendar grid covering [start, end]. year is zero for
// the all-time view.
func NewGrid(year int, start, end time.Time, grid calendar.Grid) Grid {
	out := Grid{
		Year:        year,
		Start:       puzzle.DateKey(start),
		End:         puzzle.DateKey(end),
		MonthLabels: grid.MonthLabels,
		Weeks:       make([][]Cell, 0, len(grid.Weeks)),
	}
	for _, week := range grid.Weeks {
		cells := make([]Cell, 0, len(week))
		for _, day := range week {
			cell := Cell{
				Date:   puzzle.DateKey(day.Date),
				Active: day.Active,
				Level:  int(day.Level),
			}
			if day.Logged {
				seconds := day.Seconds
				cell.TimeSeconds = &seconds
			}
			cells = append(cells, cell)
		}
		out.Weeks = append(out.Weeks, cells)
	}
	return out
}
