package stats

import "github.com/faizmokh/minitrack/internal/puzzle"

type band struct {
	label string
	upTo  int
}

// Upper bounds are inclusive; the final band is open-ended.
var bands = []band{
	{label: "< 1 min", upTo: 60},
	{label: "1 – 2 min", upTo: 120},
	{label: "2 – 3 min", upTo: 180},
	{label: "3 – 4 min", upTo: 240},
	{label: "4 – 5 min", upTo: 300},
	{label: "> 5 min", upTo: -1},
}

// Distribution splits records into one-minute bands up to five minutes.
// An empty input yields no buckets.
func Distribution(records []puzzle.Record) []DistributionBucket {
	if len(records) == 0 {
		return nil
	}

	counts := make([]int, len(bands))
	for _, rec := range records {
		counts[bandIndex(rec.Seconds)]++
	}

	total := float64(len(records))
	buckets := make([]DistributionBucket, len(bands))
	for i, b := range bands {
		buckets[i] = DistributionBucket{
			Label:   b.label,
			Count:   counts[i],
			Percent: float64(counts[i]) / total * 100,
		}
	}
	return buckets
}

func bandIndex(seconds int) int {
	for i, b := range bands {
		if b.upTo < 0 || seconds <= b.upTo {
			return i
		}
	}
	return len(bands) - 1
}
