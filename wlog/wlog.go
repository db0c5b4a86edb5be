// Package wlog provides the structured, host-embeddable logger used by the
// hydraulic and water-quality engines. gosl/io's colored Pf/PfRed/PfGreen
// helpers fit a one-shot CLI run; an engine meant to be embedded in a long
// extended-period simulation (or driven by a service) needs leveled,
// structured output instead, so this wraps log/slog, adding optional file
// rotation via lumberjack.
package wlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how the engine logs.
type Config struct {
	Level    string // "debug", "info", "warn", "error"
	Format   string // "json" or "text"
	FilePath string // empty => stderr
	MaxSizeMB int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger from cfg. The zero Config is a reasonable default:
// text output to stderr at Info level.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.FilePath != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Discard is a no-op logger, the default for Project values that never call
// project.SetLogger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
