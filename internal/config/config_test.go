package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MatheusDosSantosR/tasktracker/internal/config"
	"github.com/MatheusDosSantosR/tasktracker/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Server.BaseURL != "" {
		t.Error("expected empty BaseURL")
	}

	if cfg.Board.PersistMoves {
		t.Error("expected PersistMoves to default off")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[server]
base-url = "https://tasks.example.com"
timeout-seconds = 30

[board]
persist-moves = true

[ui]
default-view = "board"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "tasktracker.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.BaseURL != "https://tasks.example.com" {
		t.Errorf("BaseURL = %q, expected %q", cfg.Server.BaseURL, "https://tasks.example.com")
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, expected 30", cfg.Server.TimeoutSeconds)
	}
	if !cfg.Board.PersistMoves {
		t.Error("expected PersistMoves enabled")
	}
	if cfg.UI.DefaultView != config.ViewBoard {
		t.Errorf("DefaultView = %q, expected %q", cfg.UI.DefaultView, config.ViewBoard)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `this is not valid toml [`

	if err := os.WriteFile(filepath.Join(tmpDir, "tasktracker.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_InvalidView(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[ui]
default-view = "gantt"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "tasktracker.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestLoad_NegativeTimeout(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[server]
timeout-seconds = -5
`

	if err := os.WriteFile(filepath.Join(tmpDir, "tasktracker.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "tasktracker")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
[server]
base-url = "https://global.example.com"

[board]
persist-moves = true
`

	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectDir := t.TempDir()
	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.BaseURL != "https://global.example.com" {
		t.Errorf("BaseURL = %q, expected global value", cfg.Server.BaseURL)
	}
	if !cfg.Board.PersistMoves {
		t.Error("expected global persist-moves to load")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "tasktracker")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	globalContent := `
[server]
base-url = "https://global.example.com"
timeout-seconds = 60

[ui]
default-view = "cards"
`
	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
[server]
base-url = "http://localhost:3000"

[ui]
default-view = "board"
`

	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, "tasktracker.toml"), []byte(projectContent), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, expected project value", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, expected global 60 to survive", cfg.Server.TimeoutSeconds)
	}
	if cfg.UI.DefaultView != config.ViewBoard {
		t.Errorf("DefaultView = %q, expected project value", cfg.UI.DefaultView)
	}
}

func TestLoad_ProjectEmptyOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "tasktracker")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	globalContent := `
[server]
base-url = "https://global.example.com"
`
	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
[server]
base-url = ""
`

	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, "tasktracker.toml"), []byte(projectContent), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.BaseURL != "" {
		t.Errorf("BaseURL = %q, expected project empty string to win", cfg.Server.BaseURL)
	}
}
