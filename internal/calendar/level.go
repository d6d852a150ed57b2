package calendar

// Level is the 0-4 intensity of a day cell. Faster solves score higher.
type Level uint8

const (
	LevelNone Level = iota
	LevelSlow
	LevelSteady
	LevelFast
	LevelFastest
)

// Thresholds holds the inclusive upper bound, in seconds, of each logged level.
type Thresholds struct {
	Fastest int
	Fast    int
	Steady  int
}

// DefaultThresholds are the product defaults: one minute, ninety seconds, two minutes.
var DefaultThresholds = Thresholds{
	Fastest: 60,
	Fast:    90,
	Steady:  120,
}

// Classify maps a logged duration to its level. Callers pass only durations
// that exist; absent durations are always LevelNone.
func (t Thresholds) Classify(seconds int) Level {
	switch {
	case seconds <= t.Fastest:
		return LevelFastest
	case seconds <= t.Fast:
		return LevelFast
	case seconds <= t.Steady:
		return LevelSteady
	default:
		return LevelSlow
	}
}

func (t Thresholds) level(seconds int, logged bool) Level {
	if !logged {
		return LevelNone
	}
	return t.Classify(seconds)
}
