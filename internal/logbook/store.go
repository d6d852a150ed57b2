package logbook

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/storage"
)

// Store keeps puzzle times in human-editable monthly Markdown files.
// Hand edits may leave several entries under one date; List returns them all.
type Store struct {
	reader *Reader
	writer *Writer
}

var _ storage.Store = (*Store)(nil)

// NewStore builds a Markdown-backed store rooted at the manager's base path.
func NewStore(manager *files.Manager) *Store {
	return &Store{
		reader: NewReader(manager),
		writer: NewWriter(manager),
	}
}

// Log appends rec unless the date already has an entry.
func (s *Store) Log(ctx context.Context, user string, rec puzzle.Record) (puzzle.Record, error) {
	rec = normalize(rec)
	if rec.Seconds <= 0 {
		return puzzle.Record{}, puzzle.ErrInvalidSeconds
	}

	section, err := s.reader.Section(ctx, user, rec.Date)
	switch {
	case err == nil && len(section.Entries) > 0:
		return puzzle.Record{}, &storage.AlreadyLoggedError{Existing: toRecord(section.Date, section.Entries[0])}
	case err != nil && !errors.Is(err, ErrSectionNotFound):
		return puzzle.Record{}, err
	}

	if err := s.writer.Append(ctx, user, rec.Date, fromRecord(rec)); err != nil {
		return puzzle.Record{}, err
	}
	return rec, nil
}

// Upsert replaces each record's date section with that single record.
func (s *Store) Upsert(ctx context.Context, user string, recs []puzzle.Record) (int, error) {
	written := 0
	for _, rec := range recs {
		rec = normalize(rec)
		if rec.Seconds <= 0 {
			return written, puzzle.ErrInvalidSeconds
		}
		if err := s.writer.Replace(ctx, user, rec.Date, []Entry{fromRecord(rec)}); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// List returns every entry ordered by date.
func (s *Store) List(ctx context.Context, user string) ([]puzzle.Record, error) {
	sections, err := s.reader.All(ctx, user)
	if err != nil {
		return nil, err
	}

	var records []puzzle.Record
	for _, section := range sections {
		for _, entry := range section.Entries {
			records = append(records, toRecord(section.Date, entry))
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// Delete drops the date's section.
func (s *Store) Delete(ctx context.Context, user string, date time.Time) error {
	_, err := s.writer.Delete(ctx, user, date)
	if errors.Is(err, ErrSectionNotFound) {
		return puzzle.ErrNotFound
	}
	return err
}

// Close is a no-op; every write is flushed immediately.
func (s *Store) Close() error {
	return nil
}

func normalize(rec puzzle.Record) puzzle.Record {
	rec.Date = puzzle.Day(rec.Date)
	if rec.Source == "" {
		rec.Source = puzzle.SourceManual
	}
	return rec
}

func toRecord(date time.Time, entry Entry) puzzle.Record {
	return puzzle.Record{
		Date:    puzzle.Day(date),
		Seconds: entry.Seconds,
		Source:  puzzle.Source(entry.Source),
	}
}

func fromRecord(rec puzzle.Record) Entry {
	return Entry{Seconds: rec.Seconds, Source: string(rec.Source)}
}
