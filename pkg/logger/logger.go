package logger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
)

// Log is the global logger instance
var Log *slog.Logger

// Setup initializes the global logger based on the environment
func Setup(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

// CaptureError logs an error and forwards it to Sentry. Sentry drops events
// when Init was never called, so this is safe to use unconditionally.
func CaptureError(msg string, err error, args ...any) {
	Log.Error(msg, append(args, "error", err)...)
	sentry.CaptureException(fmt.Errorf("%s: %w", msg, err))
}
