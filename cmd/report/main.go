package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/candidates/internal/archive"
	"github.com/JonMunkholm/candidates/internal/config"
	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/logging"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	// Load .env file if it exists; real environment variables win
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr == nil {
		slog.Debug("loaded .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)
	logger.Debug("configuration loaded", "config", cfg.String())

	opts := core.Options{
		Input:  cfg.Files.Input,
		Output: cfg.Files.Output,
	}

	// The store connects on its first Archive call, after the export
	if cfg.ArchiveEnabled() {
		store, err := archive.New(archive.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			Table:    cfg.Archive.Table,
			Timeout:  cfg.Archive.Timeout,
		})
		if err != nil {
			fail(ctx, fmt.Errorf("%w: %w", core.ErrArchive, err))
			return 1
		}
		defer store.Close()
		opts.Archiver = store
	}

	if err := core.Run(ctx, opts, os.Stdout); err != nil {
		fail(ctx, err)
		return 1
	}

	return 0
}

// fail logs a run failure with its diagnostic code.
func fail(ctx context.Context, err error) {
	msg := core.MapError(err)
	logging.FromContext(ctx).Error("report failed",
		"error", err,
		"code", msg.Code,
		"reason", msg.Message,
		"action", msg.Action,
	)
}
