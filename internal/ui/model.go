package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/stats"
	"github.com/faizmokh/minitrack/internal/storage"
)

// Options wires the TUI to its store and tracker settings.
type Options struct {
	Store      storage.Store
	User       string
	Start      time.Time
	Thresholds calendar.Thresholds
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model owns Bubble Tea state for the heatmap browser.
type Model struct {
	ctx        context.Context
	store      storage.Store
	user       string
	start      time.Time
	thresholds calendar.Thresholds
	clock      func() time.Time

	today   time.Time
	best    calendar.DailyBest
	tracker stats.Tracker
	years   []calendar.YearGrid
	overall calendar.Grid

	yearIndex int
	allTime   bool
	cursor    time.Time

	mode  mode
	input textinput.Model

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeLogTime
)

type recordsLoadedMsg struct {
	records []puzzle.Record
	err     error
}

type logResultMsg struct {
	record puzzle.Record
	err    error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	input := textinput.New()
	input.Placeholder = "MM:SS"
	input.CharLimit = 6
	input.Width = 10

	today := puzzle.Today(clock())
	return Model{
		ctx:        ctx,
		store:      opts.Store,
		user:       opts.User,
		start:      puzzle.Day(opts.Start),
		thresholds: opts.Thresholds,
		clock:      clock,
		today:      today,
		best:       calendar.DailyBest{},
		cursor:     today,
		input:      input,
		loading:    true,
		statusLine: "Loading puzzle times...",
	}
}

// Init loads every record for the user.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeLogTime {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	case recordsLoadedMsg:
		return m.handleLoaded(msg)
	case logResultMsg:
		return m.handleLogResult(msg)
	default:
		if m.mode == modeLogTime {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		return m.moveCursor(-1), nil
	case "right", "l":
		return m.moveCursor(1), nil
	case "up", "k":
		return m.moveCursor(-7), nil
	case "down", "j":
		return m.moveCursor(7), nil
	case "[":
		return m.switchYear(-1), nil
	case "]":
		return m.switchYear(1), nil
	case "v":
		m.allTime = !m.allTime
		m.cursor = m.clampCursor(m.cursor)
		m.errorLine = ""
		return m, nil
	case "t":
		m.allTime = false
		m.yearIndex = len(m.years) - 1
		m.cursor = m.today
		return m, nil
	case "r":
		m.loading = true
		m.statusLine = "Refreshing..."
		m.errorLine = ""
		return m, m.loadCmd()
	case "a":
		if m.loading {
			return m, nil
		}
		m.mode = modeLogTime
		m.input.SetValue("")
		m.statusLine = ""
		m.errorLine = ""
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.statusLine = "Cancelled."
		m.errorLine = ""
		return m, nil
	case tea.KeyEnter:
		seconds, err := puzzle.ParseClock(m.input.Value())
		if err != nil {
			m.errorLine = err.Error()
			return m, nil
		}
		rec := puzzle.Record{Date: m.cursor, Seconds: seconds, Source: puzzle.SourceManual}
		if err := puzzle.Validate(rec, m.today); err != nil {
			m.errorLine = err.Error()
			return m, nil
		}
		m.mode = modeNormal
		m.input.Blur()
		m.statusLine = fmt.Sprintf("Saving %s for %s...", puzzle.FormatClock(seconds), rec.Key())
		m.errorLine = ""
		return m, m.logCmd(rec)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load data: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.today = puzzle.Today(m.clock())
	m.best = calendar.DailyBests(msg.records)
	m.tracker = stats.Track(m.start, m.today, m.best)
	m.overall = calendar.BuildGrid(m.start, m.today, m.best, m.thresholds)

	selectedYear := m.cursor.Year()
	m.years = calendar.YearlyGrids(m.start, m.today, m.best, m.thresholds)
	m.yearIndex = len(m.years) - 1
	for i, yg := range m.years {
		if yg.Year == selectedYear {
			m.yearIndex = i
		}
	}
	m.cursor = m.clampCursor(m.cursor)

	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Loaded %d solved day%s.", len(m.best), plural(len(m.best)))
	return m, nil
}

func (m Model) handleLogResult(msg logResultMsg) (tea.Model, tea.Cmd) {
	var already *storage.AlreadyLoggedError
	switch {
	case errors.As(msg.err, &already):
		m.errorLine = fmt.Sprintf("Already logged %s for %s.", puzzle.FormatClock(already.Existing.Seconds), already.Existing.Key())
		m.statusLine = ""
		return m, nil
	case msg.err != nil:
		m.errorLine = fmt.Sprintf("Log failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Logged %s for %s.", puzzle.FormatClock(msg.record.Seconds), msg.record.Key())
	m.loading = true
	return m, m.loadCmd()
}

// bounds is the date range of the grid currently on screen.
func (m Model) bounds() (time.Time, time.Time) {
	if m.allTime || len(m.years) == 0 {
		return m.start, m.today
	}
	return calendar.YearBounds(m.years[m.yearIndex].Year, m.start, m.today)
}

func (m Model) grid() calendar.Grid {
	if m.allTime || len(m.years) == 0 {
		return m.overall
	}
	return m.years[m.yearIndex].Grid
}

func (m Model) clampCursor(day time.Time) time.Time {
	from, to := m.bounds()
	if day.Before(from) {
		return from
	}
	if day.After(to) {
		return to
	}
	return day
}

func (m Model) moveCursor(days int) Model {
	m.cursor = m.clampCursor(m.cursor.AddDate(0, 0, days))
	m.errorLine = ""
	return m
}

func (m Model) switchYear(delta int) Model {
	if m.allTime || len(m.years) == 0 {
		return m
	}
	next := m.yearIndex + delta
	if next < 0 || next >= len(m.years) {
		return m
	}
	m.yearIndex = next
	year := m.years[next].Year
	day := m.cursor.Day()
	if last := daysIn(year, m.cursor.Month()); day > last {
		day = last
	}
	m.cursor = m.clampCursor(time.Date(year, m.cursor.Month(), day, 0, 0, 0, 0, time.UTC))
	m.errorLine = ""
	return m
}

func (m Model) loadCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx
	user := m.user
	return func() tea.Msg {
		records, err := store.List(ctx, user)
		return recordsLoadedMsg{records: records, err: err}
	}
}

func (m Model) logCmd(rec puzzle.Record) tea.Cmd {
	store := m.store
	ctx := m.ctx
	user := m.user
	return func() tea.Msg {
		saved, err := store.Log(ctx, user, rec)
		return logResultMsg{record: saved, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	title := "minitrack · All time"
	if !m.allTime && len(m.years) > 0 {
		title = fmt.Sprintf("minitrack · %d", m.years[m.yearIndex].Year)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.loading && len(m.years) == 0 {
		b.WriteString("Loading tracker...\n")
	} else {
		b.WriteString(RenderGrid(m.grid(), m.cursor))
		b.WriteByte('\n')
		if cell, ok := m.grid().Cell(m.cursor); ok {
			b.WriteString(Tooltip(cell))
			b.WriteByte('\n')
			b.WriteString(dimStyle.Render(puzzle.PuzzleURL(cell.Date)))
			b.WriteByte('\n')
		}
		b.WriteString(fmt.Sprintf("\nCompletions %d  Days tracked %d  Rate %.1f%%  Streak %d (best %d)\n",
			m.tracker.Completions, m.tracker.DaysTracked, m.tracker.CompletionRate,
			m.tracker.CurrentStreak, m.tracker.LongestStreak))
		b.WriteString(Legend())
		b.WriteByte('\n')
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	if m.mode == modeLogTime {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Time for %s (MM:SS, Enter to save, Esc to cancel):", puzzle.DateKey(m.cursor)))
		b.WriteByte('\n')
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Navigation: <-/-> day  up/down week  [ ] year  v all-time  t today  r reload"))
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("Actions: a log time  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
