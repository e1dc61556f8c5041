package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// loggerKey is the key used to store the logger in the context.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromCtx retrieves the command-scoped logger, or nil when none was stored.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// CommandLogging returns a cobra PersistentPreRunE hook that injects
// a command-scoped logger into the command context.
func CommandLogging(baseLogger *slog.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		requestID := uuid.NewString()

		// Create a logger enriched with invocation-specific fields
		commandLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("command", cmd.CommandPath()),
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = WithLogger(ctx, commandLogger)
		ctx = context.WithValue(ctx, startKey, time.Now())
		cmd.SetContext(ctx)
		return nil
	}
}

const startKey = contextKey("start")

// CommandCompleted logs completion details of the command stored in ctx.
func CommandCompleted(ctx context.Context, err error) {
	logger := GetLoggerFromCtx(ctx)
	if logger == nil {
		return
	}
	var latency time.Duration
	if start, ok := ctx.Value(startKey).(time.Time); ok {
		latency = time.Since(start)
	}
	if err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()), slog.Duration("latency", latency))
		return
	}
	logger.Info("Command completed", slog.Duration("latency", latency))
}
