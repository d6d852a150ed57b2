// Package storage defines the persistence contract for logged puzzle times.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Store persists records scoped to a user. Each user holds at most one
// record per date through Log and Upsert.
type Store interface {
	// Log inserts a record, failing with *AlreadyLoggedError when the date is taken.
	Log(ctx context.Context, user string, rec puzzle.Record) (puzzle.Record, error)
	// Upsert inserts or replaces records by date and reports how many were written.
	Upsert(ctx context.Context, user string, recs []puzzle.Record) (int, error)
	// List returns the user's records ordered by date.
	List(ctx context.Context, user string) ([]puzzle.Record, error)
	// Delete removes the record for date, or returns puzzle.ErrNotFound.
	Delete(ctx context.Context, user string, date time.Time) error
	Close() error
}

// AlreadyLoggedError reports the record that already occupies a date.
type AlreadyLoggedError struct {
	Existing puzzle.Record
}

func (e *AlreadyLoggedError) Error() string {
	return fmt.Sprintf("%s: %s", puzzle.ErrAlreadyLogged, e.Existing.Key())
}

func (e *AlreadyLoggedError) Unwrap() error {
	return puzzle.ErrAlreadyLogged
}
