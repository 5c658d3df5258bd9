// Package audit emits structured audit events for security-relevant actions.
package audit

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"orgauth.app/internal/obs"
	"orgauth.app/internal/token"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context for audit logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the audit request id from context if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// LogEvent writes an audit log entry enriched with request and user context.
func LogEvent(ctx context.Context, event string, fields map[string]any) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("event name is required")
	}
	attrs := []zap.Field{
		zap.String("type", "audit"),
		zap.String("event", event),
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		attrs = append(attrs, zap.String("request_id", rid))
	}
	if userID, ok := token.UserIDFromContext(ctx); ok {
		attrs = append(attrs, zap.String("user_id", userID))
	}
	if len(fields) > 0 {
		attrs = append(attrs, zap.Any("fields", fields))
	}
	obs.Logger().Info("audit", attrs...)
	return nil
}
