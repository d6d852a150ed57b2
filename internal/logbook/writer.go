package logbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Writer handles append, replace, and delete operations on Markdown log files.
type Writer struct {
	manager *files.Manager
}

// NewWriter wires the dependencies required to manipulate Markdown log files.
func NewWriter(manager *files.Manager) *Writer {
	return &Writer{manager: manager}
}

// Append adds an entry at the end of the date's section, creating the section if needed.
func (w *Writer) Append(ctx context.Context, user string, date time.Time, entry Entry) error {
	path, lines, state, err := w.loadSection(ctx, user, date)
	if err != nil {
		return err
	}

	if state == nil {
		lines = appendSection(lines, date, []Entry{entry})
	} else {
		lines = insertLine(lines, state.insertAt(), formatEntry(entry))
	}
	return writeLines(path, lines)
}

// Replace swaps every entry under the date's section for entries.
func (w *Writer) Replace(ctx context.Context, user string, date time.Time, entries []Entry) error {
	path, lines, state, err := w.loadSection(ctx, user, date)
	if err != nil {
		return err
	}

	if state == nil {
		lines = appendSection(lines, date, entries)
		return writeLines(path, lines)
	}

	replaced := make([]string, 0, len(lines)+len(entries))
	replaced = append(replaced, lines[:state.start+1]...)
	for _, entry := range entries {
		replaced = append(replaced, formatEntry(entry))
	}
	replaced = append(replaced, trailingLines(lines, state)...)
	replaced = append(replaced, lines[state.end:]...)
	return writeLines(path, replaced)
}

// Delete removes the whole section for date.
func (w *Writer) Delete(ctx context.Context, user string, date time.Time) (DateSection, error) {
	path, lines, state, err := w.loadSection(ctx, user, date)
	if err != nil {
		return DateSection{}, err
	}
	if state == nil {
		return DateSection{}, ErrSectionNotFound
	}

	start := state.start
	// Drop the blank separator left above the section.
	if start > 0 && strings.TrimSpace(lines[start-1]) == "" && state.end == len(lines) {
		start--
	}
	lines = append(lines[:start], lines[state.end:]...)
	return state.section, writeLines(path, lines)
}

func (w *Writer) loadSection(ctx context.Context, user string, date time.Time) (string, []string, *sectionState, error) {
	if w == nil || w.manager == nil {
		return "", nil, nil, fmt.Errorf("writer not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return "", nil, nil, err
	}

	path, err := w.manager.EnsureMonthFile(user, date)
	if err != nil {
		return "", nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, err
	}

	lines := splitLines(string(data))
	heading := dateHeading(date)

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = i
			break
		}
	}
	if start == -1 {
		return path, lines, nil, nil
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}

	var (
		entryIndexes []int
		entries      []Entry
	)
	for i := start + 1; i < end; i++ {
		if entry, ok := parseEntryLine(strings.TrimSpace(lines[i])); ok {
			entryIndexes = append(entryIndexes, i)
			entries = append(entries, entry)
		}
	}

	state := &sectionState{
		section: DateSection{
			Date:    puzzle.Day(date),
			Entries: entries,
		},
		start:        start,
		end:          end,
		entryIndexes: entryIndexes,
	}
	return path, lines, state, nil
}

type sectionState struct {
	section      DateSection
	start        int
	end          int
	entryIndexes []int
}

// insertAt is the line just after the section's last entry.
func (s *sectionState) insertAt() int {
	if len(s.entryIndexes) == 0 {
		return s.start + 1
	}
	return s.entryIndexes[len(s.entryIndexes)-1] + 1
}

// trailingLines keeps non-entry lines (notes, blank separators) inside a replaced section.
func trailingLines(lines []string, state *sectionState) []string {
	isEntry := make(map[int]bool, len(state.entryIndexes))
	for _, idx := range state.entryIndexes {
		isEntry[idx] = true
	}
	var kept []string
	for i := state.start + 1; i < state.end; i++ {
		if !isEntry[i] {
			kept = append(kept, lines[i])
		}
	}
	return kept
}

func appendSection(lines []string, date time.Time, entries []Entry) []string {
	if needsSeparation(lines) {
		lines = append(lines, "")
	}
	lines = append(lines, dateHeading(date))
	for _, entry := range entries {
		lines = append(lines, formatEntry(entry))
	}
	return lines
}

func dateHeading(date time.Time) string {
	return "## " + puzzle.DateKey(date)
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	// Remove the trailing empty element produced by Split when the input ends with a newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func needsSeparation(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return strings.TrimSpace(lines[len(lines)-1]) != ""
}

func insertLine(lines []string, index int, line string) []string {
	if index < 0 || index > len(lines) {
		return append(lines, line)
	}
	return append(lines[:index], append([]string{line}, lines[index:]...)...)
}

func writeLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, "minitrack-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	content := strings.Join(lines, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil {
		if err := os.Chmod(temp.Name(), info.Mode()); err != nil {
			return err
		}
	}

	return os.Rename(temp.Name(), path)
}

func formatEntry(entry Entry) string {
	source := entry.Source
	if source == "" {
		source = string(puzzle.SourceManual)
	}
	return fmt.Sprintf("- [%s] %s", puzzle.FormatClock(entry.Seconds), source)
}
