// Package config loads kalc configuration from file, environment
// variables, and CLI flags.
package config

// Defaults applied before any config source is loaded.
const (
	DefaultHistoryFile  = ".kalc/history.db"
	DefaultHistoryLimit = 50
	DefaultOutput       = "table"
)

// Config holds the resolved kalc configuration.
type Config struct {
	// HistoryPath is the SQLite history database location.
	HistoryPath string `koanf:"history_path"`
	// HistoryLimit caps how many entries history listings show by default.
	HistoryLimit int `koanf:"history_limit"`
	// Record stores every successful calculation in the history database.
	Record bool `koanf:"record"`
	// Output selects the history rendering format (table, json, csv).
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
