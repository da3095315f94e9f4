package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	sessionIDKey contextKey = "session_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id and attaches an enriched logger
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return enrich(context.WithValue(ctx, requestIDKey, requestID), zap.String("request_id", requestID))
}

// WithSessionID stores the storefront session id and attaches an enriched logger
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return enrich(context.WithValue(ctx, sessionIDKey, sessionID), zap.String("session_id", sessionID))
}

// WithUserID stores the authenticated user id and attaches an enriched logger
func WithUserID(ctx context.Context, userID string) context.Context {
	return enrich(context.WithValue(ctx, userIDKey, userID), zap.String("user_id", userID))
}

func enrich(ctx context.Context, field zap.Field) context.Context {
	return WithContext(ctx, FromContext(ctx).With(field))
}

// RequestID retrieves the request id from context
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// SessionID retrieves the session id from context
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// UserID retrieves the user id from context
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// TraceID extracts the trace id of the active span, or "" when there is none
func TraceID(ctx context.Context) string {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// L returns the context logger with trace correlation fields added.
// Usage: logger.L(ctx).Info("order created", zap.String("order_id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		l = l.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return l
}
