// Package transfer reads and writes the date,time_seconds CSV format.
package transfer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Header is the only accepted first line.
const Header = "date,time_seconds"

// ErrInvalidHeader is returned when the first line is not Header.
var ErrInvalidHeader = errors.New("invalid CSV header, expected: " + Header)

// ImportResult carries the parsed rows and the lines that were skipped.
type ImportResult struct {
	Records []puzzle.Record
	Skipped []string
}

// ExportFileName names an export taken on the given day.
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("puzzle_times_%s.csv", puzzle.DateKey(day))
}

// Export writes the header and one row per record, ordered by date.
func Export(w io.Writer, records []puzzle.Record) error {
	sorted := make([]puzzle.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range sorted {
		if err := cw.Write([]string{rec.Key(), strconv.Itoa(rec.Seconds)}); err != nil {
			return fmt.Errorf("write row %s: %w", rec.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import parses a CSV export. Malformed rows are skipped and reported with
// their 1-based line number; only a bad header fails the whole import.
func Import(r io.Reader) (ImportResult, error) {
	scanner := bufio.NewScanner(r)
	var result ImportResult

	lineNo := 0
	headerSeen := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !headerSeen {
			if line != Header {
				return ImportResult{}, ErrInvalidHeader
			}
			headerSeen = true
			continue
		}
		if line == "" {
			continue
		}

		rec, ok := parseRow(line)
		if !ok {
			result.Skipped = append(result.Skipped, fmt.Sprintf("Line %d: invalid format", lineNo))
			continue
		}
		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("read csv: %w", err)
	}
	if !headerSeen {
		return ImportResult{}, ErrInvalidHeader
	}
	return result, nil
}

func parseRow(line string) (puzzle.Record, bool) {
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil || len(fields) < 2 {
		return puzzle.Record{}, false
	}
	dateField := strings.TrimSpace(fields[0])
	secondsField := strings.TrimSpace(fields[1])
	if dateField == "" || secondsField == "" {
		return puzzle.Record{}, false
	}

	date, err := puzzle.ParseDate(dateField)
	if err != nil {
		return puzzle.Record{}, false
	}
	raw, err := strconv.ParseFloat(secondsField, 64)
	if err != nil {
		return puzzle.Record{}, false
	}
	seconds, ok := puzzle.RoundSeconds(raw)
	if !ok {
		return puzzle.Record{}, false
	}

	return puzzle.Record{
		Date:    date,
		Seconds: seconds,
		Source:  puzzle.SourceImport,
	}, true
}
