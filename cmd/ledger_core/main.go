package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/ledger_core/internal/commands"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger; stdout carries command output
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	app := &commands.App{
		Config:  cfg,
		Logger:  logger,
		Open:    commands.OpenPostgres,
		Migrate: database.Migrate,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd, err := commands.NewRootCommand(app).ExecuteContextC(ctx)
	stop()

	middleware.CommandCompleted(cmd.Context(), err)
	if err != nil {
		if middleware.GetLoggerFromCtx(cmd.Context()) == nil {
			// Flag and argument errors fail before the command logger exists
			logger.Error("Command failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
