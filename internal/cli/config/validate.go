package config

import "fmt"

// validOutputs are the accepted history rendering formats.
var validOutputs = map[string]bool{
	"table": true,
	"json":  true,
	"csv":   true,
}

// Validate checks a loaded configuration for usable values.
func Validate(cfg *Config) error {
	if cfg.HistoryPath == "" {
		return fmt.Errorf("history_path must not be empty")
	}
	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", cfg.HistoryLimit)
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid output format %q (expected table, json, or csv)", cfg.Output)
	}
	return nil
}
