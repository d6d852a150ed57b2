package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

const (
	cellGlyph  = "■"
	cellWidth  = 2
	axisWidth  = 4
	tooltipSep = " • "
)

var levelColors = [...]lipgloss.Color{
	calendar.LevelNone:    lipgloss.Color("#3f3f46"),
	calendar.LevelSlow:    lipgloss.Color("#a7f3d0"),
	calendar.LevelSteady:  lipgloss.Color("#6ee7b7"),
	calendar.LevelFast:    lipgloss.Color("#10b981"),
	calendar.LevelFastest: lipgloss.Color("#047857"),
}

var (
	dimStyle    = lipgloss.NewStyle().Faint(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

// weekdayAxis labels every other row, Sunday first.
var weekdayAxis = [7]string{"Sun", "", "Tue", "", "Thu", "", "Sat"}

// RenderGrid draws a heatmap with a month label row above and a weekday
// axis on the left. A non-zero cursor highlights that day.
func RenderGrid(grid calendar.Grid, cursor time.Time) string {
	if len(grid.Weeks) == 0 {
		return dimStyle.Render("No data for this range.") + "\n"
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", axisWidth))
	b.WriteString(labelStyle.Render(monthRow(grid.MonthLabels)))
	b.WriteByte('\n')

	for row := 0; row < len(weekdayAxis); row++ {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", axisWidth, weekdayAxis[row])))
		for _, week := range grid.Weeks {
			b.WriteString(renderCell(week[row], cursor))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend shows the colour scale.
func Legend() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(levelColors[calendar.LevelNone]).Render(cellGlyph))
	b.WriteString(" Not logged   Slower ")
	for level := calendar.LevelSlow; level <= calendar.LevelFastest; level++ {
		b.WriteString(lipgloss.NewStyle().Foreground(levelColors[level]).Render(cellGlyph))
		b.WriteByte(' ')
	}
	b.WriteString("Faster")
	return labelStyle.Render(b.String())
}

// Tooltip describes one cell.
func Tooltip(cell calendar.DayCell) string {
	label := cell.Date.Format("Mon, Jan 2, 2006")
	switch {
	case !cell.Active:
		return label + tooltipSep + "Outside tracker range"
	case !cell.Logged:
		return label + tooltipSep + "No puzzle logged"
	default:
		return label + tooltipSep + "Solved in " + puzzle.FormatClock(cell.Seconds)
	}
}

func renderCell(cell calendar.DayCell, cursor time.Time) string {
	style := lipgloss.NewStyle().Foreground(levelColors[cell.Level])
	if !cell.Active {
		style = style.Faint(true)
	}
	if !cursor.IsZero() && cell.Active && cell.Date.Equal(cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(cellGlyph)
}

// monthRow places each label over its week column, dropping labels that
// would overlap the previous one.
func monthRow(labels []string) string {
	row := []rune(strings.Repeat(" ", len(labels)*cellWidth))
	next := 0
	for i, label := range labels {
		pos := i * cellWidth
		if label == "" || pos < next {
			continue
		}
		for j, r := range []rune(label) {
			if pos+j >= len(row) {
				row = append(row, ' ')
			}
			row[pos+j] = r
		}
		next = pos + len([]rune(label)) + 1
	}
	return strings.TrimRight(string(row), " ")
}
