// Package logger sets up the process-wide slog logger, optionally writing to a rotated file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"ucstore-inventory/pkg/config"
)

// New builds a logger from cfg. Output "file" and "both" rotate cfg.FilePath.
func New(cfg config.LogConfig) (*slog.Logger, error) {
	var out io.Writer = os.Stdout

	switch cfg.Output {
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		if cfg.Output == "file" {
			out = fileWriter
		} else {
			out = io.MultiWriter(os.Stdout, fileWriter)
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), nil
}

// Init builds a logger and installs it as the slog default.
func Init(cfg config.LogConfig) (*slog.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return l, nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
