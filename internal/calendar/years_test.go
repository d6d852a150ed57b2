package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestYearlyGridsClipsBounds(t *testing.T) {
	start := date(2014, time.August, 21)
	end := date(2016, time.March, 3)
	grids := YearlyGrids(start, end, DailyBest{}, DefaultThresholds)

	if len(grids) != 3 {
		t.Fatalf("grids = %d, want 3", len(grids))
	}
	if grids[0].Year != 2014 || grids[2].Year != 2016 {
		t.Fatalf("years = %d..%d, want 2014..2016", grids[0].Year, grids[2].Year)
	}

	first := BuildGrid(start, date(2014, time.December, 31), DailyBest{}, DefaultThresholds)
	if !reflect.DeepEqual(grids[0].Grid, first) {
		t.Fatalf("2014 grid differs from direct build")
	}
	if got := grids[1].Grid.ActiveDays(); got != 365 {
		t.Fatalf("2015 active days = %d, want 365", got)
	}
	if got := grids[2].Grid.ActiveDays(); got != 31+29+3 {
		t.Fatalf("2016 active days = %d, want 63", got)
	}
}

func TestYearlyGridsMatchOverallClassification(t *testing.T) {
	start := date(2022, time.November, 15)
	end := date(2024, time.February, 10)
	best := DailyBest{
		"2022-11-15": 58,
		"2022-12-31": 95,
		"2023-01-01": 121,
		"2023-07-04": 90,
		"2024-02-10": 60,
	}

	overall := BuildGrid(start, end, best, DefaultThresholds)
	for _, yg := range YearlyGrids(start, end, best, DefaultThresholds) {
		for _, week := range yg.Grid.Weeks {
			for _, cell := range week {
				if !cell.Active {
					continue
				}
				other, ok := overall.Cell(cell.Date)
				if !ok {
					t.Fatalf("%s missing from overall grid", cell.Date)
				}
				if other.Level != cell.Level || other.Seconds != cell.Seconds || other.Logged != cell.Logged {
					t.Fatalf("%s: yearly %#v vs overall %#v", cell.Date, cell, other)
				}
			}
		}
	}
}

func TestYearlyGridsEmptyWhenReversed(t *testing.T) {
	if grids := YearlyGrids(date(2024, time.January, 2), date(2024, time.January, 1), DailyBest{}, DefaultThresholds); len(grids) != 0 {
		t.Fatalf("grids = %d, want 0", len(grids))
	}
}
