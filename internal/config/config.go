// Package config handles loading tasktracker.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/MatheusDosSantosR/tasktracker/internal/paths"
)

// Config represents the tasktracker.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
	Board  Board  `toml:"board"`
	UI     UI     `toml:"ui"`
}

// Server contains API endpoint configuration.
type Server struct {
	// BaseURL is the TaskTracker API address, e.g. "https://tasks.example.com".
	BaseURL string `toml:"base-url"`

	// TimeoutSeconds bounds each API request. Zero means the client default.
	TimeoutSeconds int `toml:"timeout-seconds"`
}

// Board contains kanban board configuration.
type Board struct {
	// PersistMoves makes cross-column board moves write the derived status
	// back to the server instead of staying local display state.
	PersistMoves bool `toml:"persist-moves"`
}

// UI contains terminal UI configuration.
type UI struct {
	// DefaultView is the view the interactive UI opens with,
	// "cards" or "board".
	DefaultView string `toml:"default-view"`
}

// ViewCards and ViewBoard are the accepted ui.default-view values.
const (
	ViewCards = "cards"
	ViewBoard = "board"
)

// Load loads configuration from the working directory and the global config
// file, with per-key project-over-global precedence. Returns an empty config
// if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "tasktracker.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.BaseURL = mergeString(projectMeta.IsDefined("server", "base-url"), projectCfg.Server.BaseURL, globalCfg.Server.BaseURL)
	merged.UI.DefaultView = mergeString(projectMeta.IsDefined("ui", "default-view"), projectCfg.UI.DefaultView, globalCfg.UI.DefaultView)
	if projectMeta.IsDefined("server", "timeout-seconds") {
		merged.Server.TimeoutSeconds = projectCfg.Server.TimeoutSeconds
	} else {
		merged.Server.TimeoutSeconds = globalCfg.Server.TimeoutSeconds
	}
	if projectMeta.IsDefined("board", "persist-moves") {
		merged.Board.PersistMoves = projectCfg.Board.PersistMoves
	} else {
		merged.Board.PersistMoves = globalCfg.Board.PersistMoves
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) validate() error {
	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeout-seconds must not be negative: %d", c.Server.TimeoutSeconds)
	}
	switch c.UI.DefaultView {
	case "", ViewCards, ViewBoard:
	default:
		return fmt.Errorf("ui.default-view must be %q or %q: %q", ViewCards, ViewBoard, c.UI.DefaultView)
	}
	return nil
}
