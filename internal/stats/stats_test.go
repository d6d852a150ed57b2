package stats

import (
	"math"
	"testing"
	"time"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []puzzle.Record {
	return []puzzle.Record{
		{Date: day(2024, time.January, 1), Seconds: 45},
		{Date: day(2024, time.January, 2), Seconds: 130},
		{Date: day(2024, time.January, 3), Seconds: 75},
		{Date: day(2024, time.January, 8), Seconds: 400},
		{Date: day(2024, time.February, 1), Seconds: 60},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.TotalPuzzles != 5 {
		t.Fatalf("TotalPuzzles = %d, want 5", s.TotalPuzzles)
	}
	if s.TotalSeconds != 710 {
		t.Fatalf("TotalSeconds = %d, want 710", s.TotalSeconds)
	}
	if s.AverageSeconds != 142 {
		t.Fatalf("AverageSeconds = %v, want 142", s.AverageSeconds)
	}
	if empty := Summarize(nil); empty.AverageSeconds != 0 || empty.TotalPuzzles != 0 {
		t.Fatalf("Summarize(nil) = %#v", empty)
	}
}

func TestWeeklyStartsOnMonday(t *testing.T) {
	buckets := Weekly(sampleRecords())
	if len(buckets) != 3 {
		t.Fatalf("weekly buckets = %d, want 3", len(buckets))
	}
	if !buckets[0].Period.Equal(day(2024, time.January, 1)) {
		t.Fatalf("first week = %s, want 2024-01-01", buckets[0].Period)
	}
	if buckets[0].Count != 3 || math.Abs(buckets[0].AverageSeconds-250.0/3) > 1e-9 {
		t.Fatalf("first week = %#v", buckets[0])
	}
	if !buckets[2].Period.Equal(day(2024, time.January, 29)) {
		t.Fatalf("last week = %s, want 2024-01-29", buckets[2].Period)
	}
}

func TestMonthly(t *testing.T) {
	buckets := Monthly(sampleRecords())
	if len(buckets) != 2 {
		t.Fatalf("monthly buckets = %d, want 2", len(buckets))
	}
	if buckets[0].AverageSeconds != 162.5 {
		t.Fatalf("January average = %v, want 162.5", buckets[0].AverageSeconds)
	}
	if !buckets[1].Period.Equal(day(2024, time.February, 1)) || buckets[1].AverageSeconds != 60 {
		t.Fatalf("February bucket = %#v", buckets[1])
	}
}

func TestFastestAndSlowest(t *testing.T) {
	records := sampleRecords()
	fastest := Fastest(records, 2)
	if len(fastest) != 2 || fastest[0].Seconds != 45 || fastest[1].Seconds != 60 {
		t.Fatalf("Fastest = %#v", fastest)
	}
	slowest := Slowest(records, 10)
	if len(slowest) != 5 || slowest[0].Seconds != 400 || slowest[4].Seconds != 45 {
		t.Fatalf("Slowest = %#v", slowest)
	}
	if records[0].Seconds != 45 || records[3].Seconds != 400 {
		t.Fatalf("input reordered: %#v", records)
	}
}

func TestDistributionBands(t *testing.T) {
	records := []puzzle.Record{
		{Seconds: 60}, {Seconds: 61}, {Seconds: 120}, {Seconds: 180},
		{Seconds: 240}, {Seconds: 300}, {Seconds: 301}, {Seconds: 10},
	}
	got := Distribution(records)
	want := []int{2, 2, 1, 1, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("buckets = %d, want %d", len(got), len(want))
	}
	for i, count := range want {
		if got[i].Count != count {
			t.Fatalf("bucket %q count = %d, want %d", got[i].Label, got[i].Count, count)
		}
	}
	if got[0].Percent != 25 {
		t.Fatalf("first bucket percent = %v, want 25", got[0].Percent)
	}
	if Distribution(nil) != nil {
		t.Fatalf("Distribution(nil) should be nil")
	}
}

func TestTrackStreaks(t *testing.T) {
	best := calendar.DailyBest{
		"2024-01-01": 50,
		"2024-01-02": 50,
		"2024-01-03": 50,
		"2024-01-05": 50,
		"2024-01-06": 50,
	}
	tr := Track(day(2024, time.January, 1), day(2024, time.January, 7), best)
	if tr.DaysTracked != 7 || tr.Completions != 5 {
		t.Fatalf("tracker = %#v", tr)
	}
	if tr.LongestStreak != 3 {
		t.Fatalf("LongestStreak = %d, want 3", tr.LongestStreak)
	}
	if tr.CurrentStreak != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", tr.CurrentStreak)
	}
	if math.Abs(tr.CompletionRate-500.0/7) > 1e-9 {
		t.Fatalf("CompletionRate = %v", tr.CompletionRate)
	}
}

func TestTrackClampsDaysTracked(t *testing.T) {
	tr := Track(day(2024, time.January, 5), day(2024, time.January, 1), calendar.DailyBest{})
	if tr.DaysTracked != 1 {
		t.Fatalf("DaysTracked = %d, want 1", tr.DaysTracked)
	}
}

func TestBuildDashboard(t *testing.T) {
	d := Build(sampleRecords(), day(2024, time.January, 1), day(2024, time.February, 1))
	if d.Summary.TotalPuzzles != 5 || len(d.Fastest) != 5 || len(d.Distribution) != 6 {
		t.Fatalf("dashboard = %#v", d)
	}
	if d.Tracker.DaysTracked != 32 {
		t.Fatalf("DaysTracked = %d, want 32", d.Tracker.DaysTracked)
	}
}
