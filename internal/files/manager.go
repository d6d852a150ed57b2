package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	databaseName = "minitrack.db"
)

// Manager centralizes where minitrack data lives on disk and how files are named.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.minitrack.
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath("")
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing all data.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DatabasePath is where the SQLite backend keeps its database.
func (m *Manager) DatabasePath() string {
	return filepath.Join(m.basePath, databaseName)
}

// UserPath is the directory holding one user's Markdown logbooks.
func (m *Manager) UserPath(user string) string {
	return filepath.Join(m.basePath, sanitizeUser(user))
}

// MonthPath resolves the Markdown file for the user and month of t.
// The file may not exist yet; callers can choose to create it.
func (m *Manager) MonthPath(user string, t time.Time) string {
	yearDir := filepath.Join(m.UserPath(user), fmt.Sprintf("%04d", t.Year()))
	return filepath.Join(yearDir, fmt.Sprintf("%04d-%02d.md", t.Year(), t.Month()))
}

// EnsureMonthFile guarantees the directory tree exists and the month file is
// present with the expected heading. It returns the absolute path to the file.
func (m *Manager) EnsureMonthFile(user string, t time.Time) (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}

	path := m.MonthPath(user, t)
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePermissions)
	if err != nil {
		return "", fmt.Errorf("open month file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat month file: %w", err)
	}

	if info.Size() == 0 {
		if _, err := file.WriteString(monthHeader(t)); err != nil {
			return "", fmt.Errorf("write month header: %w", err)
		}
	}

	return path, nil
}

// EnsureBase creates the base directory.
func (m *Manager) EnsureBase() error {
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}

// MonthFiles lists the user's month files in chronological order.
func (m *Manager) MonthFiles(user string) ([]string, error) {
	root := m.UserPath(user)
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list month files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func monthHeader(t time.Time) string {
	return fmt.Sprintf("# %s %04d\n\n", t.Month().String(), t.Year())
}

func sanitizeUser(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return "local"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, user)
}
