package logger

import (
	"context"

	zap "go.uber.org/zap"
	observer "go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a logger that captures entries for assertions.
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// TestContext creates a context carrying a capturing test logger.
func TestContext() (context.Context, *observer.ObservedLogs) {
	l, logs := TestLogger()
	return ContextWithLogger(context.Background(), l), logs
}

// NopContext creates a context with a no-op logger
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}
