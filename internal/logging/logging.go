// Package logging builds the process-wide slog logger: console plus an
// optional size-rotated file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmunix/strmsync/internal/config"
)

// Logger wraps the root slog.Logger and owns the file sink.
type Logger struct {
	*slog.Logger
	RunID   string
	rotator *lumberjack.Logger
}

// New builds the root logger. Output goes to console and, unless cfg.File
// is empty, to a lumberjack-rotated file. Every line carries a run_id.
func New(cfg config.LogConfig, console io.Writer) (*Logger, error) {
	out := console
	var rotator *lumberjack.Logger
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		out = io.MultiWriter(console, rotator)
	}

	runID := uuid.NewString()
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})

	return &Logger{
		Logger:  slog.New(handler).With("run_id", runID),
		RunID:   runID,
		rotator: rotator,
	}, nil
}

// Close flushes and closes the file sink, if any.
func (l *Logger) Close() error {
	if l.rotator == nil {
		return nil
	}
	return l.rotator.Close()
}

// ParseLevel maps a config level name onto slog. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
