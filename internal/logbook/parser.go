package logbook

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Parser incrementally reads Markdown logbooks and emits sections as they are discovered.
type Parser struct {
	r        io.Reader
	scanner  *bufio.Scanner
	pending  *DateSection
	initDone bool
}

// NewParser returns a parser ready to tokenize Markdown from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// NextSection returns the next dated section, or io.EOF when none remain.
func (p *Parser) NextSection() (*DateSection, error) {
	if !p.initDone {
		if p.r == nil {
			return nil, io.EOF
		}
		p.scanner = bufio.NewScanner(p.r)
		p.initDone = true
	}

	section := p.pending
	p.pending = nil

	if section == nil {
		var err error
		section, err = p.consumeUntilSection()
		if err != nil {
			return nil, err
		}
		if section == nil {
			return nil, io.EOF
		}
	}

	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if date, ok := parseSectionHeading(line); ok {
			p.pending = &DateSection{Date: date}
			return section, nil
		}

		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if entry, ok := parseEntryLine(line); ok {
			section.Entries = append(section.Entries, entry)
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return section, nil
}

func (p *Parser) consumeUntilSection() (*DateSection, error) {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if date, ok := parseSectionHeading(line); ok {
			return &DateSection{Date: date}, nil
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

var entryPattern = regexp.MustCompile(`^- \[(\d{1,3}:\d{2})\](?: (\S+))?\s*$`)

func parseEntryLine(line string) (Entry, bool) {
	matches := entryPattern.FindStringSubmatch(line)
	if matches == nil {
		return Entry{}, false
	}

	seconds, err := puzzle.ParseClock(matches[1])
	if err != nil || seconds <= 0 {
		return Entry{}, false
	}

	source := matches[2]
	if source == "" {
		source = string(puzzle.SourceManual)
	}
	return Entry{Seconds: seconds, Source: source}, true
}

func parseSectionHeading(line string) (time.Time, bool) {
	if !strings.HasPrefix(line, "## ") {
		return time.Time{}, false
	}
	date, err := puzzle.ParseDate(strings.TrimSpace(line[3:]))
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
