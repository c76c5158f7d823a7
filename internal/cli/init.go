// Package cli provides common command initialization utilities shared by
// cmd/spendwatch, cmd/spendwatch-cli and cmd/archive-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"spendwatch/internal/config"
	"spendwatch/internal/storage"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenFileStore opens the record file store, exiting the process on failure.
func OpenFileStore(logger *slog.Logger, path string) *storage.FileStore {
	store, err := storage.NewFileStore(path)
	if err != nil {
		logger.Error("Failed to open record store", "error", err, "path", path)
		os.Exit(1)
	}
	return store
}
