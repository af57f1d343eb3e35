package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. JSON to stdout is the shipping
// format; LOG_FORMAT=text switches to the readable local form, without
// source locations to keep dev output short.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	if cfg != nil && cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level, AddSource: true}))
}
