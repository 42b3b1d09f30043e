package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
)

// UserContext is the authenticated portal user of a request
type UserContext struct {
	SessionID    uuid.UUID
	Username     string
	FullName     string
	CustomerName string
	AuthMode     domain.AuthMode
	ExpiresAt    time.Time
	// ERPSession is set in session mode only
	ERPSession *erp.Session
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// FromSession builds the request user from a stored portal session
func FromSession(s *domain.PortalSession) *UserContext {
	u := &UserContext{
		SessionID:    s.ID,
		Username:     s.Username,
		FullName:     s.FullName,
		CustomerName: s.CustomerName,
		AuthMode:     s.AuthMode,
		ExpiresAt:    s.ExpiresAt,
	}
	if s.AuthMode == domain.AuthModeSession && s.ERPSid != "" {
		u.ERPSession = &erp.Session{SID: s.ERPSid, CSRFToken: s.ERPCSRFToken}
	}
	return u
}

// ERPContext returns ctx carrying the ERP credentials to use for ctx's user:
// their own ERP session in session mode, none (API token) otherwise.
func ERPContext(ctx context.Context) context.Context {
	user, ok := FromContext(ctx)
	if !ok || user.ERPSession == nil {
		return ctx
	}
	return erp.WithSession(ctx, user.ERPSession)
}
