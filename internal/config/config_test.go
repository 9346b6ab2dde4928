package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      func(dir string) Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: func(dir string) Config {
				return Config{
					SQLiteDBPath: filepath.Join(dir, "data", "test.db"),
					ExportDir:    filepath.Join(dir, "exports"),
					ChartDir:     filepath.Join(dir, "charts"),
					LogLevel:     "info",
				}
			},
			wantErr: false,
		},
		{
			name: "empty database path",
			config: func(dir string) Config {
				return Config{
					ExportDir: filepath.Join(dir, "exports"),
					ChartDir:  filepath.Join(dir, "charts"),
					LogLevel:  "info",
				}
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "empty export dir",
			config: func(dir string) Config {
				return Config{
					SQLiteDBPath: filepath.Join(dir, "test.db"),
					ChartDir:     filepath.Join(dir, "charts"),
					LogLevel:     "info",
				}
			},
			wantErr:     true,
			errorString: "export directory cannot be empty",
		},
		{
			name: "invalid log level",
			config: func(dir string) Config {
				return Config{
					SQLiteDBPath: filepath.Join(dir, "test.db"),
					ExportDir:    filepath.Join(dir, "exports"),
					ChartDir:     filepath.Join(dir, "charts"),
					LogLevel:     "loud",
				}
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config(t.TempDir())
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		SQLiteDBPath: filepath.Join(dir, "data", "test.db"),
		ExportDir:    filepath.Join(dir, "exports"),
		ChartDir:     filepath.Join(dir, "charts"),
		LogLevel:     "debug",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		cfg := Config{LogLevel: in}
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Fatalf("%q unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q expected %v, got %v", in, want, got)
		}
	}

	cfg := Config{LogLevel: "verbose"}
	if _, err := cfg.SlogLevel(); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.SQLiteDBPath != "./data/spendtrack.db" {
		t.Fatalf("unexpected default db path %q", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level %q", cfg.LogLevel)
	}
}
