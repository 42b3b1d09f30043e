package middleware

import (
	"context"

	"github.com/lordsmint/portal-api/internal/auth"
)

type contextKey string

const (
	auditRequestBodyKey contextKey = "audit_request_body"
	userHolderKey       contextKey = "user_holder"
)

// userHolder carries the authenticated user back up to outer middleware,
// which only see the request context they created
type userHolder struct {
	user *auth.UserContext
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey, h)
}

func heldUser(ctx context.Context) *auth.UserContext {
	if h, ok := ctx.Value(userHolderKey).(*userHolder); ok {
		return h.user
	}
	return nil
}
