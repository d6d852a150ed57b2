package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faizmokh/minitrack/internal/transfer"
)

func TestImportCommandRejectsBadHeader(t *testing.T) {
	app := newTestApp(t, newTempStore(t))
	path := filepath.Join(t.TempDir(), "bad.csv")
	writeFile(t, path, "day,seconds\n2024-01-01,40\n")

	err := executeCommandErr(t, newImportCommand(context.Background(), app), path)
	if !errors.Is(err, transfer.ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestImportCommandSkipsFutureRows(t *testing.T) {
	app := newTestApp(t, newTempStore(t))
	path := filepath.Join(t.TempDir(), "times.csv")
	writeFile(t, path, "date,time_seconds\n2024-03-01,40.4\n2024-04-01,50\n")

	out := executeCommand(t, newImportCommand(context.Background(), app), path)
	assertContains(t, out, "Imported 1 time\n")
	assertContains(t, out, "2024-04-01: date cannot be in the future")

	records := mustList(t, app)
	if len(records) != 1 || records[0].Seconds != 40 {
		t.Fatalf("records = %#v", records)
	}
}

func TestExportCommandWritesDefaultFile(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, newTempStore(t))
	executeCommand(t, newLogCommand(ctx, app), "--date", "2024-03-02", "1:11")

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	out := executeCommand(t, newExportCommand(ctx, app), "--out", path)
	assertContains(t, out, "Exported 1 time to "+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "date,time_seconds\n2024-03-02,71\n" {
		t.Fatalf("export = %q", data)
	}
	if got := transfer.ExportFileName(app.today()); got != "puzzle_times_2024-03-05.csv" {
		t.Fatalf("default name = %q", got)
	}
}
