package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned by a SessionStore for unknown sessions
var ErrSessionNotFound = errors.New("session not found")

// SessionStore holds portal sessions server-side
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.PortalSession, error)
	Set(ctx context.Context, session *domain.PortalSession) error
	Clear(ctx context.Context, id uuid.UUID) error
}

// Middleware authenticates requests by session token
type Middleware struct {
	tokens     *TokenIssuer
	sessions   SessionStore
	cookieName string
	logger     *zap.Logger
	now        func() time.Time
}

func NewMiddleware(cfg *config.SessionConfig, tokens *TokenIssuer, sessions SessionStore, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:     tokens,
		sessions:   sessions,
		cookieName: cfg.CookieName,
		logger:     logger,
		now:        time.Now,
	}
}

// TokenFromRequest returns the session token from the session cookie or an
// Authorization: Bearer header, in that order.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if ck, err := r.Cookie(cookieName); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Authenticate rejects requests without a live portal session
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			m.logger.Debug("authentication failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			writeUnauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

// OptionalAuthenticate attaches the user when a valid session is presented
// and otherwise continues anonymously.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := m.resolve(r); err == nil {
			r = r.WithContext(WithUserContext(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) resolve(r *http.Request) (*UserContext, error) {
	token := TokenFromRequest(r, m.cookieName)
	if token == "" {
		return nil, errMissingCredentials
	}
	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.SessionID()
	if err != nil {
		return nil, err
	}
	session, err := m.sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrExpiredToken
		}
		m.logger.Error("failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, err
	}
	if session.IsExpired(m.now()) {
		return nil, ErrExpiredToken
	}
	return FromSession(session), nil
}

var errMissingCredentials = errors.New("missing session token")

func writeUnauthorized(w http.ResponseWriter, err error) {
	msg := "Authentication required"
	if errors.Is(err, ErrExpiredToken) {
		msg = "Session has expired, please log in again"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Error:   "Unauthorized",
		Message: msg,
	})
}
