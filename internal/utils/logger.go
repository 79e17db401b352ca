// Package utils provides common utilities shared across packages
package utils

// Logger is the logging interface accepted by the walker, the ignore
// matcher and the setup code. Traversal errors go through Error.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}

// OrNoop returns l, or a NoopLogger when l is nil
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}
