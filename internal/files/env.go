package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".minitrack"
)

// ResolveBasePath determines where minitrack keeps its data, defaulting to ~/.minitrack.
// An explicit override (usually MINITRACK_HOME from config) wins when non-empty.
func ResolveBasePath(override string) (string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		return normalizePath(override)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

func normalizePath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
