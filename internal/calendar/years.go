package calendar

import (
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

// YearGrid is the grid for one calendar year, clipped to the tracked range.
type YearGrid struct {
	Year int
	Grid Grid
}

// YearlyGrids builds an independent grid for each calendar year touched by
// [start, end]. The first and last years are clipped to start and end.
func YearlyGrids(start, end time.Time, best DailyBest, thresholds Thresholds) []YearGrid {
	start = puzzle.Day(start)
	end = puzzle.Day(end)
	if start.After(end) {
		return nil
	}

	grids := make([]YearGrid, 0, end.Year()-start.Year()+1)
	for year := start.Year(); year <= end.Year(); year++ {
		from, to := YearBounds(year, start, end)
		if from.After(to) {
			continue
		}
		grids = append(grids, YearGrid{
			Year: year,
			Grid: BuildGrid(from, to, best, thresholds),
		})
	}
	return grids
}

// YearBounds clips the calendar year to [start, end].
func YearBounds(year int, start, end time.Time) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if year == start.Year() {
		from = puzzle.Day(start)
	}
	if year == end.Year() {
		to = puzzle.Day(end)
	}
	return from, to
}
