package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/config"
	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/logbook"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/storage"
)

func TestCLIWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, newTempStore(t))

	// 1. Log two days.
	assertContains(t, executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-03", "1:05"),
		"Logged 01:05 for 2024-03-03")
	assertContains(t, executeCommand(t, newLogCommand(ctx, app), "42"),
		"Logged 00:42 for 2024-03-05")

	// 2. A second time for the same day is rejected.
	assertContains(t, executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-03", "50"),
		"Already logged 01:05 for 2024-03-03")

	// 3. Import fills in a gap and overrides an existing day.
	csvPath := filepath.Join(t.TempDir(), "times.csv")
	writeFile(t, csvPath, "date,time_seconds\n2024-03-04,95\n2024-03-03,61\nbogus\n")
	importOut := executeCommand(t, newImportCommand(ctx, app), csvPath)
	assertContains(t, importOut, "Imported 2 times")
	assertContains(t, importOut, "Line 4: invalid format")

	// 4. The tracker now shows a three day streak.
	trackerOut := executeCommand(t, newTrackerCommand(ctx, app), "--year", "2024")
	assertContains(t, trackerOut, "Tracker 2024")
	assertContains(t, trackerOut, "Total completions: 3")
	assertContains(t, trackerOut, "Current streak:    3")

	// 5. Delete one day and export the rest.
	assertContains(t, executeCommand(t, newDeleteCommand(ctx, app), "--date", "2024-03-04"), "Deleted 2024-03-04")
	exportOut := executeCommand(t, newExportCommand(ctx, app), "--out", "-")
	assertContains(t, exportOut, "date,time_seconds\n2024-03-03,61\n2024-03-05,42\n")
	assertNotContains(t, exportOut, "2024-03-04")
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func executeCommandErr(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	return cmd.Execute()
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}

func newTempStore(t *testing.T) storage.Store {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return logbook.NewStore(mgr)
}

// newTestApp pins today to 2024-03-05 and tracking to start on 2024-01-01.
func newTestApp(t *testing.T, store storage.Store) *App {
	t.Helper()
	now := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.Local)
	return &App{
		Config: config.Config{
			User:         "local",
			StartDate:    "2024-01-01",
			LevelFastest: 60,
			LevelFast:    90,
			LevelSteady:  120,
		},
		Store: store,
		Now:   func() time.Time { return now },
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func mustList(t *testing.T, app *App) []puzzle.Record {
	t.Helper()
	records, err := app.Store.List(context.Background(), app.Config.User)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return records
}
