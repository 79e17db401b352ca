// Package logger writes leveled diagnostics to the error stream
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Logger provides leveled logging. It never fails the run: write errors on
// the diagnostic stream are dropped.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	useColors bool
	level     LogLevel
	now       func() time.Time
}

// New creates a new Logger with the given settings
func New(out io.Writer, level LogLevel, useColors bool) *Logger {
	return &Logger{
		out:       out,
		useColors: useColors,
		level:     level,
		now:       time.Now,
	}
}

// Level reports the active level
func (l *Logger) Level() LogLevel {
	return l.level
}

// ParseLevel converts a level name to a LogLevel
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, "DEBUG", color.CyanString, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, "INFO", color.BlueString, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, "WARN", color.YellowString, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, "ERROR", color.RedString, format, args...)
}

func (l *Logger) log(level LogLevel, prefix string, paint func(string, ...interface{}) string, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = paint(prefix)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s %s] %s\n", l.now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
