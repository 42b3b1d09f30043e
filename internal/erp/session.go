package erp

import "context"

// Session is a user's ERP login: the sid cookie and the CSRF token required
// on mutating requests.
type Session struct {
	SID       string
	CSRFToken string
}

type sessionKey struct{}

// WithSession attaches an ERP session to ctx. Requests made with ctx
// authenticate as that user instead of the API token.
func WithSession(ctx context.Context, s *Session) context.Context {
	if s == nil || s.SID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the ERP session attached to ctx, if any
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
