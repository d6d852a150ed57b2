// Package stats derives the dashboard views from logged records.
package stats

import (
	"sort"
	"time"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

// TopCount is how many records the fastest and slowest tables show.
const TopCount = 10

// Summary holds the all-time headline numbers.
type Summary struct {
	TotalPuzzles   int
	AverageSeconds float64
	TotalSeconds   int
}

// Bucket is an average over one week or month.
type Bucket struct {
	Period         time.Time
	AverageSeconds float64
	Count          int
}

// DistributionBucket counts records falling in one duration band.
type DistributionBucket struct {
	Label   string
	Count   int
	Percent float64
}

// Dashboard bundles every aggregate the dashboard view renders.
type Dashboard struct {
	Summary      Summary
	Weekly       []Bucket
	Monthly      []Bucket
	Fastest      []puzzle.Record
	Slowest      []puzzle.Record
	Distribution []DistributionBucket
	Tracker      Tracker
}

// Build computes the full dashboard.
func Build(records []puzzle.Record, start, today time.Time) Dashboard {
	return Dashboard{
		Summary:      Summarize(records),
		Weekly:       Weekly(records),
		Monthly:      Monthly(records),
		Fastest:      Fastest(records, TopCount),
		Slowest:      Slowest(records, TopCount),
		Distribution: Distribution(records),
		Tracker:      Track(start, today, calendar.DailyBests(records)),
	}
}

// Summarize totals every record.
func Summarize(records []puzzle.Record) Summary {
	var s Summary
	for _, rec := range records {
		s.TotalSeconds += rec.Seconds
	}
	s.TotalPuzzles = len(records)
	if s.TotalPuzzles > 0 {
		s.AverageSeconds = float64(s.TotalSeconds) / float64(s.TotalPuzzles)
	}
	return s
}

// Weekly averages records per Monday-started week.
func Weekly(records []puzzle.Record) []Bucket {
	return bucketBy(records, func(day time.Time) time.Time {
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	})
}

// Monthly averages records per calendar month.
func Monthly(records []puzzle.Record) []Bucket {
	return bucketBy(records, func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	})
}

func bucketBy(records []puzzle.Record, period func(time.Time) time.Time) []Bucket {
	type acc struct {
		total int
		count int
	}
	groups := make(map[time.Time]*acc)
	for _, rec := range records {
		key := period(puzzle.Day(rec.Date))
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.total += rec.Seconds
		a.count++
	}

	buckets := make([]Bucket, 0, len(groups))
	for key, a := range groups {
		buckets = append(buckets, Bucket{
			Period:         key,
			AverageSeconds: float64(a.total) / float64(a.count),
			Count:          a.count,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period.Before(buckets[j].Period)
	})
	return buckets
}

// Fastest returns up to n records ordered by ascending time.
func Fastest(records []puzzle.Record, n int) []puzzle.Record {
	return top(records, n, func(a, b puzzle.Record) bool {
		if a.Seconds != b.Seconds {
			return a.Seconds < b.Seconds
		}
		return a.Date.Before(b.Date)
	})
}

// Slowest returns up to n records ordered by descending time.
func Slowest(records []puzzle.Record, n int) []puzzle.Record {
	return top(records, n, func(a, b puzzle.Record) bool {
		if a.Seconds != b.Seconds {
			return a.Seconds > b.Seconds
		}
		return a.Date.Before(b.Date)
	})
}

func top(records []puzzle.Record, n int, less func(a, b puzzle.Record) bool) []puzzle.Record {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	sorted := make([]puzzle.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
