package logbook

import "time"

// Entry represents a single solve line within a dated section.
type Entry struct {
	Seconds int
	Source  string
}

// DateSection groups entries beneath the same YYYY-MM-DD heading.
type DateSection struct {
	Date    time.Time
	Entries []Entry
}
