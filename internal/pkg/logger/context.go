package logger

import (
	"context"

	"go.uber.org/zap"
)

type (
	loggerCtxKey    struct{}
	requestIDCtxKey struct{}
)

// WithRequestID stores the id assigned by GinLogger
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, requestID)
}

// GetRequestID returns the id stored by WithRequestID, or ""
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// ToContext stores l so that deeper layers log with the request scope
func ToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// FromContext returns the logger stored by ToContext, or the global one, tagged
// with the request id when there is one.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return L()
	}
	l, ok := ctx.Value(loggerCtxKey{}).(*Logger)
	if !ok || l == nil {
		l = L()
	}
	return l.WithContext(ctx)
}

// WithContext tags l with the request id found in ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := GetRequestID(ctx); id != "" {
		return l.With(zap.String("request_id", id))
	}
	return l
}
