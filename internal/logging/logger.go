// Package logging wraps a process-wide structured logger. Before Init
// the package-level helpers are no-ops, so library code can log freely
// without caring whether the binary configured logging.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

// Init opens a dated log file under ~/.newsdesk/logs and installs the
// global logger. Level is one of debug, info, warn, error.
func Init(level string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("logging: resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".newsdesk", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("logging: create log dir: %w", err)
	}

	name := fmt.Sprintf("newsdesk-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open log file: %w", err)
	}

	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	logger.SetLevel(parseLevel(level))
	return nil
}

// InitStderr installs a logger writing to stderr, for tools and tests.
func InitStderr(level string) {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs at debug level.
func Debug(msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}

// Info logs at info level.
func Info(msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Info(msg, keyvals...)
	}
}

// Warn logs at warn level.
func Warn(msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func Error(msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Error(msg, keyvals...)
	}
}

// WithPrefix returns a sub-logger with the given prefix, or nil when
// logging was never initialized.
func WithPrefix(prefix string) *log.Logger {
	if logger == nil {
		return nil
	}
	return logger.WithPrefix(prefix)
}
