package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Database
	SQLiteDBPath string

	// Output directories
	ExportDir string
	ChartDir  string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendtrack.db"),
		ExportDir:    getEnv("EXPORT_DIR", "./exports"),
		ChartDir:     getEnv("CHART_DIR", "./charts"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	for _, d := range []struct{ name, path string }{
		{"export", c.ExportDir},
		{"chart", c.ChartDir},
	} {
		if d.path == "" {
			errors = append(errors, fmt.Sprintf("%s directory cannot be empty", d.name))
			continue
		}
		if _, err := os.Stat(d.path); os.IsNotExist(err) {
			if err := os.MkdirAll(d.path, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create %s directory '%s': %v", d.name, d.path, err))
			}
		}
	}

	if _, err := c.SlogLevel(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel maps the LogLevel string to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
