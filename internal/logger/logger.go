// Package logger sets up the process-wide slog logger. Level and format come
// from LOG_LEVEL (debug|info|warn|error) and LOG_FORMAT (text|json).
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Setup builds the default logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	defaultLogger = slog.New(h)
	return defaultLogger
}

// SetupFile logs to the file at path, appending. An empty path discards all
// output, which keeps the terminal UI clean. The returned closer is never nil.
func SetupFile(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Setup(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Setup(io.Discard), io.NopCloser(nil), err
	}
	return Setup(f), f, nil
}

// L returns the default logger, setting up a stderr logger on first use.
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup(os.Stderr)
	}
	return defaultLogger
}
