// Package sqlite stores puzzle times in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/storage"
	"github.com/faizmokh/minitrack/internal/storage/sqlite/migrations"
	"github.com/faizmokh/minitrack/internal/storage/sqlitemigrate"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed puzzle time persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Log inserts rec unless the user already has a time for that date.
func (s *Store) Log(ctx context.Context, user string, rec puzzle.Record) (puzzle.Record, error) {
	if err := s.ready(ctx); err != nil {
		return puzzle.Record{}, err
	}
	rec = normalize(rec)
	if rec.Seconds <= 0 {
		return puzzle.Record{}, puzzle.ErrInvalidSeconds
	}

	existing, err := s.find(ctx, user, rec.Date)
	if err == nil {
		return puzzle.Record{}, &storage.AlreadyLoggedError{Existing: existing}
	}
	if !errors.Is(err, puzzle.ErrNotFound) {
		return puzzle.Record{}, fmt.Errorf("check existing entry: %w", err)
	}

	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO puzzle_times (user_id, date, time_seconds, source, created_at)
VALUES (?, ?, ?, ?, ?)
`,
		user,
		rec.Key(),
		rec.Seconds,
		string(rec.Source),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return puzzle.Record{}, fmt.Errorf("insert puzzle time: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return puzzle.Record{}, fmt.Errorf("read inserted id: %w", err)
	}
	return rec, nil
}

// Upsert writes every record in one transaction, replacing times on conflicting dates.
func (s *Store) Upsert(ctx context.Context, user string, recs []puzzle.Record) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO puzzle_times (user_id, date, time_seconds, source, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, date) DO UPDATE SET
	time_seconds = excluded.time_seconds,
	source = excluded.source
`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC().UnixMilli()
	written := 0
	for _, rec := range recs {
		rec = normalize(rec)
		if rec.Seconds <= 0 {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert %s: %w", rec.Key(), puzzle.ErrInvalidSeconds)
		}
		if _, err := stmt.ExecContext(ctx, user, rec.Key(), rec.Seconds, string(rec.Source), createdAt); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert %s: %w", rec.Key(), err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return written, nil
}

// List returns the user's records ordered by date.
func (s *Store) List(ctx context.Context, user string) ([]puzzle.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, date, time_seconds, source
FROM puzzle_times
WHERE user_id = ?
ORDER BY date ASC, id ASC
`, user)
	if err != nil {
		return nil, fmt.Errorf("list puzzle times: %w", err)
	}
	defer rows.Close()

	var records []puzzle.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate puzzle times: %w", err)
	}
	return records, nil
}

// Delete removes the record for date.
func (s *Store) Delete(ctx context.Context, user string, date time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM puzzle_times WHERE user_id = ? AND date = ?`,
		user, puzzle.DateKey(date),
	)
	if err != nil {
		return fmt.Errorf("delete puzzle time: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete puzzle time: %w", err)
	}
	if affected == 0 {
		return puzzle.ErrNotFound
	}
	return nil
}

func (s *Store) find(ctx context.Context, user string, date time.Time) (puzzle.Record, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, date, time_seconds, source
FROM puzzle_times
WHERE user_id = ? AND date = ?
`, user, puzzle.DateKey(date))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return puzzle.Record{}, puzzle.ErrNotFound
	}
	return rec, err
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (puzzle.Record, error) {
	var (
		rec    puzzle.Record
		date   string
		source string
	)
	if err := row.Scan(&rec.ID, &date, &rec.Seconds, &source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puzzle.Record{}, err
		}
		return puzzle.Record{}, fmt.Errorf("scan puzzle time: %w", err)
	}
	parsed, err := puzzle.ParseDate(date)
	if err != nil {
		return puzzle.Record{}, fmt.Errorf("scan puzzle time %d: %w", rec.ID, err)
	}
	rec.Date = parsed
	rec.Source = puzzle.Source(source)
	return rec, nil
}

func normalize(rec puzzle.Record) puzzle.Record {
	rec.Date = puzzle.Day(rec.Date)
	if rec.Source == "" {
		rec.Source = puzzle.SourceManual
	}
	return rec
}
