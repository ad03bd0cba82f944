package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kalclabs/kalc/internal/cli/config"
	"github.com/kalclabs/kalc/internal/state"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	historyPath := getEnvOrDefault("KALC_HISTORY_PATH", config.DefaultHistoryFile)
	historyLimit := config.DefaultHistoryLimit
	if v := os.Getenv("KALC_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			historyLimit = n
		}
	}
	output := getEnvOrDefault("KALC_OUTPUT", config.DefaultOutput)
	record := os.Getenv("KALC_RECORD") == "true"
	verbose := os.Getenv("KALC_VERBOSE") == "true"

	return &config.Config{
		HistoryPath:  historyPath,
		HistoryLimit: historyLimit,
		Record:       record,
		Output:       output,
		Verbose:      verbose,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openHistoryStore opens (and migrates) the history database.
// Returns the store and a cleanup function that must be called
// (typically via defer).
func openHistoryStore(cfg *config.Config) (state.Store, func(), error) {
	// Ensure history directory exists
	historyDir := filepath.Dir(cfg.HistoryPath)
	if historyDir != "." && historyDir != "" {
		if err := os.MkdirAll(historyDir, 0750); err != nil {
			return nil, nil, err
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.HistoryPath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = store.Close() }
	return store, cleanup, nil
}
