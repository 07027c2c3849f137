package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxAdminID   contextKey = "admin_id"
	ctxSessionID contextKey = "session_id"
)

// AdminIDFromContext returns the authenticated admin, if any.
func AdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ctxAdminID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// AdminIDPtrFromContext is the nil-able form used for activity attribution.
func AdminIDPtrFromContext(ctx context.Context) *uuid.UUID {
	id, ok := AdminIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &id
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithAdmin injects the admin identity into the context.
func WithAdmin(ctx context.Context, adminID uuid.UUID, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAdminID, adminID)
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
