package logbook

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/faizmokh/minitrack/internal/files"
)

func newTestManager(t *testing.T) *files.Manager {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestWriterAppendCreatesSection(t *testing.T) {
	mgr := newTestManager(t)
	writer := NewWriter(mgr)

	date := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if err := writer.Append(context.Background(), "local", date, Entry{Seconds: 65, Source: "manual"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := os.ReadFile(mgr.MonthPath("local", date))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := strings.TrimLeft(`
# January 2024

## 2024-01-02
- [01:05] manual
`, "\n")
	if string(got) != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestWriterAppendExtendsExistingSection(t *testing.T) {
	mgr := newTestManager(t)
	writer := NewWriter(mgr)

	date := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	path, err := mgr.EnsureMonthFile("local", date)
	if err != nil {
		t.Fatalf("EnsureMonthFile: %v", err)
	}

	initial := strings.TrimLeft(`
# January 2024

## 2024-01-03
- [00:50] manual

## 2024-01-04
- [02:00] auto
`, "\n")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := writer.Append(context.Background(), "local", date, Entry{Seconds: 44, Source: "import"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := strings.TrimLeft(`
# January 2024

## 2024-01-03
- [00:50] manual
- [00:44] import

## 2024-01-04
- [02:00] auto
`, "\n")
	if string(got) != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestWriterReplaceKeepsNotes(t *testing.T) {
	mgr := newTestManager(t)
	writer := NewWriter(mgr)

	date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	path, err := mgr.EnsureMonthFile("local", date)
	if err != nil {
		t.Fatalf("EnsureMonthFile: %v", err)
	}

	initial := strings.TrimLeft(`
# January 2024

## 2024-01-05
- [03:00] manual
Tough clue at 4-down
- [02:10] manual

## 2024-01-06
- [01:00] auto
`, "\n")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := writer.Replace(context.Background(), "local", date, []Entry{{Seconds: 95, Source: "import"}}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := strings.TrimLeft(`
# January 2024

## 2024-01-05
- [01:35] import
Tough clue at 4-down

## 2024-01-06
- [01:00] auto
`, "\n")
	if string(got) != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestWriterDeleteRemovesSection(t *testing.T) {
	mgr := newTestManager(t)
	writer := NewWriter(mgr)

	date := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	path, err := mgr.EnsureMonthFile("local", date)
	if err != nil {
		t.Fatalf("EnsureMonthFile: %v", err)
	}

	initial := strings.TrimLeft(`
# January 2024

## 2024-01-07
- [00:40] manual

## 2024-01-08
- [01:20] manual
`, "\n")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deleted, err := writer.Delete(context.Background(), "local", date)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(deleted.Entries) != 1 || deleted.Entries[0].Seconds != 80 {
		t.Fatalf("deleted section = %#v", deleted)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := strings.TrimLeft(`
# January 2024

## 2024-01-07
- [00:40] manual
`, "\n")
	if string(got) != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}

	if _, err := writer.Delete(context.Background(), "local", date); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("second Delete error = %v, want ErrSectionNotFound", err)
	}
}
