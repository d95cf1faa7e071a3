package logger

import (
	"context"

	uuid "github.com/google/uuid"
	zap "go.uber.org/zap"
)

type ctxLoggerKey struct{}

// ContextWithLogger attaches a logger to the context
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// FromContext retrieves the logger from context, falling back to the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}

// L is a shorthand for FromContext (matches zap.L() pattern)
func L(ctx context.Context) *zap.Logger {
	return FromContext(ctx)
}

// With creates a child context with additional logger fields
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(fields...))
}

// WithRequest tags every entry logged through ctx with a fresh request id and the
// operation name. The id is returned so callers can echo it in their results.
func WithRequest(ctx context.Context, operation string) (context.Context, string) {
	id := uuid.NewString()
	return With(ctx, zap.String("request_id", id), zap.String("operation", operation)), id
}
