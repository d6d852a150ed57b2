package puzzle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxSeconds bounds any stored duration.
const MaxSeconds = math.MaxInt32

// RoundSeconds rounds a fractional duration to whole seconds. It reports false
// for NaN, infinities and results outside [1, MaxSeconds].
func RoundSeconds(value float64) (int, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	rounded := math.Round(value)
	if rounded < 1 || rounded > MaxSeconds {
		return 0, false
	}
	return int(rounded), true
}

// ParseClock converts "MM:SS", "M:SS" or a bare digit string into seconds.
// Digit strings keep their last four digits; the final two are seconds, so
// "105" reads as 1:05.
func ParseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("time is required")
	}

	if before, after, ok := strings.Cut(value, ":"); ok {
		minutes, err := strconv.Atoi(before)
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("invalid time %q (expected MM:SS)", value)
		}
		seconds, err := strconv.Atoi(after)
		if err != nil || seconds < 0 || seconds > 59 || len(after) != 2 {
			return 0, fmt.Errorf("invalid time %q (expected MM:SS)", value)
		}
		return minutes*60 + seconds, nil
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid time %q (expected MM:SS)", value)
		}
	}
	if len(value) > 4 {
		value = value[len(value)-4:]
	}

	var mm, ss string
	if len(value) <= 2 {
		ss = value
	} else {
		mm = value[:len(value)-2]
		ss = value[len(value)-2:]
	}

	minutes := 0
	if mm != "" {
		minutes, _ = strconv.Atoi(mm)
	}
	seconds, _ := strconv.Atoi(ss)
	return minutes*60 + seconds, nil
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
