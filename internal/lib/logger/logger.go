// Package logger builds the slog logger for each environment: coloured text
// through tint locally, JSON elsewhere. LOG_LEVEL overrides the level.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/magabrotheeeer/tenant-portal/internal/config"
)

// Setup returns the logger for env writing to stdout.
func Setup(env string) *slog.Logger {
	return New(os.Stdout, env, os.Getenv("LOG_LEVEL"))
}

// New returns a logger for env writing to w. An empty level picks the
// environment default.
func New(w io.Writer, env, level string) *slog.Logger {
	var handler slog.Handler
	switch env {
	case config.EnvProd:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)})
	case config.EnvDev:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      parseLevel(level, slog.LevelDebug),
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	return slog.New(handler)
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
