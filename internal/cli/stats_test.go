package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/faizmokh/minitrack/internal/report"
)

func TestStatsCommandText(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, newTempStore(t))

	assertContains(t, executeCommand(t, newStatsCommand(ctx, app)), "No puzzle times logged yet.")

	executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-04", "0:50")
	executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-05", "3:10")

	out := executeCommand(t, newStatsCommand(ctx, app))
	assertContains(t, out, "Puzzles solved: 2")
	assertContains(t, out, "Average time:   02:00")
	assertContains(t, out, "Mar 2024")
	assertContains(t, out, " 1. 2024-03-04  00:50")
	assertContains(t, out, " 1. 2024-03-05  03:10")
	assertContains(t, out, "Current streak: 2 (longest 2)")
}

func TestStatsCommandJSON(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, newTempStore(t))
	executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-01", "1:00")
	executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-02", "4:30")

	var doc report.Dashboard
	if err := json.Unmarshal([]byte(executeCommand(t, newStatsCommand(ctx, app), "--json")), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Summary.TotalPuzzles != 2 || doc.Summary.TotalSeconds != 330 {
		t.Fatalf("summary = %#v", doc.Summary)
	}
	if len(doc.Distribution) != 6 || doc.Distribution[0].Count != 1 || doc.Distribution[4].Count != 1 {
		t.Fatalf("distribution = %#v", doc.Distribution)
	}
	if doc.Tracker.DaysTracked != 65 {
		t.Fatalf("days tracked = %d, want 65", doc.Tracker.DaysTracked)
	}
}
