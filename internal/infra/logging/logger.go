// Package logging provides file-based logging for buildmenu.
// It outputs logs to both a global log file (<dir>/buildmenu.log)
// and option-specific log files (<dir>/option-K.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/runoshun/buildmenu/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile  *os.File
	optionFiles map[string]*os.File
	now         func() time.Time
	dir         string
	mu          sync.Mutex
	level       slog.Level
}

// New creates a new Logger that writes to dir.
// If dir is empty, logging is disabled (returns a no-op logger).
func New(dir string, level slog.Level) *Logger {
	return &Logger{
		dir:         dir,
		level:       level,
		now:         time.Now,
		optionFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(l.dir, 0o750)
}

// openLocked opens path for appending. Callers must hold l.mu.
func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	// G302: Log files are append-only and need read access by the user's group
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.GlobalLogPath(l.dir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureOptionFile opens or returns the log file for an option key.
func (l *Logger) ensureOptionFile(key string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.optionFiles[key]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.OptionLogPath(l.dir, key))
	if err != nil {
		return nil, err
	}
	l.optionFiles[key] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for key, f := range l.optionFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.optionFiles, key)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [option-2] [step] message
func formatLog(t time.Time, level slog.Level, key, category, msg string) string {
	scope := "global"
	if key != "" {
		scope = "option-" + key
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to appropriate files based on key.
// If key is empty, logs only to the global log.
// Otherwise logs to both the global and the option-specific log.
func (l *Logger) log(level slog.Level, key, category, msg string) {
	if l.dir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(l.now(), level, key, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if key != "" {
		if f, err := l.ensureOptionFile(key); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(key, category, msg string) {
	l.log(slog.LevelInfo, key, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(key, category, msg string) {
	l.log(slog.LevelDebug, key, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(key, category, msg string) {
	l.log(slog.LevelWarn, key, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(key, category, msg string) {
	l.log(slog.LevelError, key, category, msg)
}
