// Package main is the entry point for the pastebin API server.
//
// The main package is kept minimal. Its job is to:
// 1. Read configuration (environment variables, optional .env file)
// 2. Create dependencies (logger, seed data)
// 3. Start the server
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/sakif/pastebin/internal/config"
	"github.com/sakif/pastebin/internal/repository/memory"
	"github.com/sakif/pastebin/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Text output is easier to read in a terminal; JSON is easier for log
	// pipelines to parse.
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// === 3. LOAD SEED DATA ===
	// The stores start from the embedded seed files and live only as long as
	// this process.
	seed, err := memory.LoadSeed()
	if err != nil {
		logger.Error("failed to load seed data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger, seed)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(context.Background()); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
