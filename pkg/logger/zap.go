package logger

import (
	sdklogging "github.com/Layr-Labs/eigensdk-go/logging"
)

// New builds a zap-backed Logger at the given environment level
// ("production" or "development"), falling back to a no-op logger if
// the underlying zap construction fails so callers never have to
// handle a nil Logger on the hot path.
func New(env sdklogging.LogLevel) Logger {
	log, err := sdklogging.NewZapLogger(env)
	if err != nil {
		return NewNoOpLogger()
	}
	return log
}
