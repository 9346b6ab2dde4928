// Package cli provides common initialization for the spendtrack binary:
// .env loading, logging, configuration and store setup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"spendtrack/internal/config"
	applog "spendtrack/internal/log"
	"spendtrack/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level and
// sets it as the process default. Log lines go to stderr so they never mix
// with the interactive menu on stdout.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		// Validate() reports this properly; fall back so logging still works.
		level = applog.DefaultConfig().Level
	}
	logger := applog.New(applog.Config{Level: level, Component: "spendtrack"})
	applog.SetDefault(logger)
	return logger
}

// ValidateConfig validates the loaded configuration or exits the process.
func ValidateConfig(logger *applog.Logger, cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
}

// InitStore opens the SQLite repository, running migrations on the way up.
// Returns the repository or exits the process on failure.
func InitStore(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
