// ABOUTME: Structured logger built on charmbracelet/log.
// ABOUTME: Writes to a rotating file; debug mode mirrors output to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	// Dir is where habits.log is written. Empty disables the file.
	Dir string
	// Level is one of debug, info, warn, error. Defaults to warn.
	Level string
	// Debug forces debug level and mirrors logs to Stderr.
	Debug bool
	// Stderr receives mirrored output; defaults to os.Stderr.
	Stderr io.Writer
}

// New builds a logger from cfg. The returned closer flushes the log file.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "habits.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, file)
		closer = file
	}
	if cfg.Debug || len(writers) == 0 {
		writers = append(writers, stderr)
	}

	logger := log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habits",
	})
	return logger, closer, nil
}

// ParseLevel maps a level name to a log.Level. Empty means warn.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("unknown log level: %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
