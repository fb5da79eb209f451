// Package logger re-exports the eigensdk-go logging interface so the
// rest of the calldata guesser never imports it directly, and adds the
// no-op/ensure helpers callers need when logging is optional.
package logger

import (
	sdklogging "github.com/Layr-Labs/eigensdk-go/logging"
)

// Logger is re-exported from eigensdk-go for convenience, so callers
// of this package never need to import sdklogging themselves.
type Logger = sdklogging.Logger

// noOpLogger discards everything. Used where a caller wants a Logger
// instance but has no backing sink, e.g. in unit tests.
type noOpLogger struct{}

func (l *noOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *noOpLogger) Infof(format string, args ...interface{})       {}
func (l *noOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *noOpLogger) Debugf(format string, args ...interface{})      {}
func (l *noOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *noOpLogger) Errorf(format string, args ...interface{})      {}
func (l *noOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *noOpLogger) Warnf(format string, args ...interface{})       {}
func (l *noOpLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l *noOpLogger) Fatalf(format string, args ...interface{})      {}
func (l *noOpLogger) With(keysAndValues ...interface{}) Logger       { return l }
func (l *noOpLogger) WithComponent(componentName string) Logger      { return l }
func (l *noOpLogger) WithName(name string) Logger                    { return l }
func (l *noOpLogger) WithServiceName(serviceName string) Logger      { return l }
func (l *noOpLogger) WithHostName(hostName string) Logger            { return l }
func (l *noOpLogger) Sync() error                                    { return nil }

// NewNoOpLogger returns a Logger whose calls are all discarded.
func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

// EnsureLogger returns log if non-nil, otherwise a no-op logger, so
// every component that takes an optional Logger parameter can call its
// methods unconditionally.
func EnsureLogger(log Logger) Logger {
	if log == nil {
		return NewNoOpLogger()
	}
	return log
}
