package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// parseLevel accepts slog level names in any case. Unknown names log at warn.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn
	}
	return level
}

// initLogging sends JSON logs to the cache log file and, when verbose, a
// text copy to stderr. It returns the logger and a function closing the file.
func initLogging(logLevel string, verbose bool, stderr io.Writer) (*slog.Logger, func(), error) {
	level := parseLevel(logLevel)

	logDir := getXDGDir("XDG_CACHE_HOME", filepath.Join("Library", "Caches"), ".cache")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "nanorecipes.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handlers := teeHandler{slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level, AddSource: true})}
	if verbose {
		handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	logger := slog.New(handlers)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "level", level, "log_file", logPath, "verbose", verbose)

	return logger, func() { _ = logFile.Close() }, nil
}

// getXDGDir resolves an XDG base directory for nanorecipes: the env var if
// set, then the macOS location, then the Linux default under $HOME.
func getXDGDir(env, darwin, linux string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "nanorecipes")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Last resort - use temp directory
		return filepath.Join(os.TempDir(), "nanorecipes")
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, darwin, "nanorecipes")
	}
	return filepath.Join(homeDir, linux, "nanorecipes")
}

// teeHandler sends each record to every handler that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(t, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}
