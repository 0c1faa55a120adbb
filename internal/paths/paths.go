package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStateDir returns the default tasktracker state directory, which
// holds the saved session.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "tasktracker"), nil
}

// ResolveWithDefault returns the override when set, otherwise the result of
// the default function. Used for flag-overridable directories.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}

// GlobalConfigPath returns the path of the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "tasktracker", "config.toml"), nil
}
