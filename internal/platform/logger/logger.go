package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config is the subset of settings the logger needs.
type Config struct {
	Level string
	// JSON selects the JSON handler; otherwise a text handler is used.
	JSON bool
	// Output defaults to stdout for JSON and stderr for text.
	Output io.Writer
}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// The boolean is false when the name is not recognized.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup initializes the application's logger from cfg and installs it as the
// slog default, so package-level slog calls share its handler and level.
// An unknown level falls back to info with a warning.
func Setup(cfg Config) *slog.Logger {
	level, ok := ParseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.JSON {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		handler = slog.NewJSONHandler(out, opts)
	} else {
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	return logger
}
