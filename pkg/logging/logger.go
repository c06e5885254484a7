// Package logging wraps log/slog with package-level helpers and a
// compact console handler.
package logging

import (
	"context"
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	handler := NewCompactHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)
}

// LevelTrace sits below slog's Debug level and is used for per-record
// ingest diagnostics.
const LevelTrace = slog.LevelDebug - 4

// SetLevel changes the logging level.
func SetLevel(level slog.Level) {
	handler := NewCompactHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
}

// SetJSONOutput switches to JSON format output.
func SetJSONOutput(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
}

// Trace logs at TRACE level (per-record diagnostics).
func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs at DEBUG level (internal component behavior).
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs at INFO level (user-facing operations).
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs at WARN level (degraded but recoverable conditions).
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Fatal logs at ERROR level and exits.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
