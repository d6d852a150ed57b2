package calendar

import (
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

const (
	daysPerWeek = 7
	// A week starts a new month label only while it holds one of the month's first seven days.
	monthMarkerDays = 7
)

// DayCell is one square of the heatmap.
type DayCell struct {
	Date    time.Time
	Active  bool
	Level   Level
	Seconds int
	Logged  bool
}

// Week holds seven cells running Sunday through Saturday.
type Week [daysPerWeek]DayCell

// Grid is a week-aligned heatmap with one month label per week.
type Grid struct {
	Weeks       []Week
	MonthLabels []string
}

// BuildGrid lays out every day between start and end (inclusive) into whole
// weeks. Days outside the range pad the first and last week and are never
// active. A start after end yields an empty grid.
func BuildGrid(start, end time.Time, best DailyBest, thresholds Thresholds) Grid {
	start = puzzle.Day(start)
	end = puzzle.Day(end)
	if start.After(end) {
		return Grid{Weeks: []Week{}, MonthLabels: []string{}}
	}

	firstWeekStart := startOfWeek(start)
	lastWeekEnd := startOfWeek(end).AddDate(0, 0, daysPerWeek-1)

	var (
		weeks   []Week
		current Week
		filled  int
		cursor  = firstWeekStart
	)
	for !cursor.After(lastWeekEnd) {
		current[filled] = newCell(cursor, start, end, best, thresholds)
		filled++
		if filled == daysPerWeek {
			weeks = append(weeks, current)
			current = Week{}
			filled = 0
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	if filled > 0 {
		for ; filled < daysPerWeek; filled++ {
			current[filled] = DayCell{Date: cursor}
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, current)
	}

	return Grid{Weeks: weeks, MonthLabels: monthLabels(weeks)}
}

func newCell(day, start, end time.Time, best DailyBest, thresholds Thresholds) DayCell {
	if day.Before(start) || day.After(end) {
		return DayCell{Date: day}
	}
	seconds, logged := best.Lookup(day)
	return DayCell{
		Date:    day,
		Active:  true,
		Level:   thresholds.level(seconds, logged),
		Seconds: seconds,
		Logged:  logged,
	}
}

func monthLabels(weeks []Week) []string {
	labels := make([]string, 0, len(weeks))
	last := ""
	for i, week := range weeks {
		day, ok := firstActive(week)
		if !ok {
			labels = append(labels, "")
			continue
		}
		label := ShortMonth(day.Month())
		if (i == 0 || day.Day() <= monthMarkerDays) && label != last {
			labels = append(labels, label)
			last = label
			continue
		}
		labels = append(labels, "")
	}
	return labels
}

func firstActive(week Week) (time.Time, bool) {
	for _, cell := range week {
		if cell.Active {
			return cell.Date, true
		}
	}
	return time.Time{}, false
}

// ShortMonth returns the three-letter English month name.
func ShortMonth(m time.Month) string {
	return m.String()[:3]
}

func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ActiveDays counts the in-range cells of the grid.
func (g Grid) ActiveDays() int {
	count := 0
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Active {
				count++
			}
		}
	}
	return count
}

// Cell finds the active cell for date.
func (g Grid) Cell(date time.Time) (DayCell, bool) {
	date = puzzle.Day(date)
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Active && cell.Date.Equal(date) {
				return cell, true
			}
		}
	}
	return DayCell{}, false
}
