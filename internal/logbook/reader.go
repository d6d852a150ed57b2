package logbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Reader provides helpers to load sections from Markdown log files.
type Reader struct {
	manager *files.Manager
}

// NewReader wires a reader using the shared files.Manager.
func NewReader(manager *files.Manager) *Reader {
	return &Reader{manager: manager}
}

// Section returns the user's DateSection for the provided date.
func (r *Reader) Section(ctx context.Context, user string, date time.Time) (DateSection, error) {
	if r == nil || r.manager == nil {
		return DateSection{}, errors.New("reader not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return DateSection{}, err
	}

	sections, err := readFile(r.manager.MonthPath(user, date))
	if err != nil {
		return DateSection{}, err
	}
	for _, section := range sections {
		if puzzle.DateKey(section.Date) == puzzle.DateKey(date) {
			return section, nil
		}
	}
	return DateSection{}, ErrSectionNotFound
}

// All returns every section across the user's month files in file order.
func (r *Reader) All(ctx context.Context, user string) ([]DateSection, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}

	paths, err := r.manager.MonthFiles(user)
	if err != nil {
		return nil, err
	}

	var all []DateSection
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sections, err := readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, sections...)
	}
	return all, nil
}

func readFile(path string) ([]DateSection, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open logbook: %w", err)
	}
	defer file.Close()

	var sections []DateSection
	parser := NewParser(file)
	for {
		section, err := parser.NextSection()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sections, nil
			}
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		sections = append(sections, *section)
	}
}
