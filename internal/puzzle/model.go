package puzzle

import (
	"fmt"
	"time"
)

// Source records how a time entered the tracker.
type Source string

const (
	// SourceManual marks times typed in through the CLI or TUI.
	SourceManual Source = "manual"
	// SourceImport marks rows loaded from a CSV file.
	SourceImport Source = "import"
	// SourceAuto marks times posted by the browser extension.
	SourceAuto Source = "auto"
)

// Record is one logged solve. Date is always midnight UTC.
type Record struct {
	ID      int64
	Date    time.Time
	Seconds int
	Source  Source
}

// Key returns the record's YYYY-MM-DD date key.
func (r Record) Key() string {
	return DateKey(r.Date)
}

// Validate checks the record against today's date.
func Validate(rec Record, today time.Time) error {
	if rec.Seconds <= 0 {
		return ErrInvalidSeconds
	}
	if Day(rec.Date).After(Day(today)) {
		return ErrFutureDate
	}
	return nil
}

// PuzzleURL points at the published puzzle for the supplied date.
func PuzzleURL(date time.Time) string {
	d := Day(date)
	return fmt.Sprintf("https://www.nytimes.com/crosswords/game/mini/%d/%d/%d", d.Year(), int(d.Month()), d.Day())
}
