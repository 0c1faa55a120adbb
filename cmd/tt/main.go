// Package main implements the tt CLI tool.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/api"
	"github.com/MatheusDosSantosR/tasktracker/gateway"
	"github.com/MatheusDosSantosR/tasktracker/internal/config"
	"github.com/MatheusDosSantosR/tasktracker/internal/paths"
	"github.com/MatheusDosSantosR/tasktracker/session"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tt",
	Short:         "TaskTracker - manage your todos from the terminal",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootServer   string
	rootStateDir string
	rootVerbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootServer, "server", os.Getenv("TT_SERVER"), "API server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootStateDir, "state-dir", "", "Directory for session state")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger returns a stderr logger. Debug output is gated on --verbose.
func newLogger() *log.Logger {
	if !rootVerbose {
		return log.New(io.Discard)
	}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	return logger
}

// sessionStore opens the session store in the resolved state directory.
func sessionStore() (*session.Store, error) {
	dir, err := paths.ResolveWithDefault(rootStateDir, paths.DefaultStateDir)
	if err != nil {
		return nil, err
	}
	return session.NewStore(dir), nil
}

// loadConfig reads the merged project and global configuration.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// newClient builds an API client from the config, flags, and stored session.
func newClient() (*api.Client, *session.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := sessionStore()
	if err != nil {
		return nil, nil, nil, err
	}

	addr := rootServer
	if addr == "" {
		addr = cfg.Server.BaseURL
	}
	if addr == "" {
		return nil, nil, nil, fmt.Errorf("no server configured (set server.base-url in tasktracker.toml or pass --server)")
	}

	client := api.NewClient(addr, api.Options{
		Tokens:  store,
		Timeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		Logger:  newLogger(),
	})
	return client, store, cfg, nil
}

// newGateway builds the mutation gateway on top of a fresh API client.
func newGateway() (*gateway.Gateway, *config.Config, error) {
	client, _, cfg, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	gw := gateway.New(client, gateway.Options{
		PersistMoves: cfg.Board.PersistMoves,
		Logger:       newLogger(),
	})
	return gw, cfg, nil
}
