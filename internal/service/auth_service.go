package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
	"go.uber.org/zap"
)

// AuthService logs portal users in against the ERP and manages their sessions
type AuthService struct {
	erp      AuthERP
	sessions auth.SessionStore
	tokens   *auth.TokenIssuer
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(erpClient AuthERP, sessions auth.SessionStore, tokens *auth.TokenIssuer, cfg *config.SessionConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		erp:      erpClient,
		sessions: sessions,
		tokens:   tokens,
		ttl:      cfg.TTLDuration(),
		logger:   logger,
		now:      utcNow,
	}
}

// Login verifies credentials at the ERP, resolves the user's customer and
// opens a portal session. In token mode the ERP session opened to check the
// password is only used to confirm the logged user and is then dropped.
func (s *AuthService) Login(ctx context.Context, r *http.Request, req domain.LoginRequest) (*domain.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	result, err := s.erp.Login(ctx, username, req.Password)
	if err != nil {
		if erp.IsUnauthorized(err) {
			return nil, fmt.Errorf("login %s: %w", username, ErrUnauthorized)
		}
		return nil, translateERPError(err, "login")
	}

	sessionCtx := erp.WithSession(ctx, result.Session)
	loggedUser, err := s.erp.LoggedUser(sessionCtx)
	if err != nil {
		return nil, translateERPError(err, "resolve logged user")
	}
	if loggedUser == "" || loggedUser == "Guest" {
		return nil, fmt.Errorf("login %s: erp returned guest: %w", username, ErrUnauthorized)
	}

	mode := domain.AuthModeSession
	lookupCtx := sessionCtx
	if s.erp.TokenAuth() {
		mode = domain.AuthModeToken
		lookupCtx = ctx
		if err := s.erp.Logout(sessionCtx); err != nil {
			s.logger.Debug("failed to close verification session", zap.String("username", loggedUser), zap.Error(err))
		}
	}

	customer, err := s.erp.CustomerForUser(lookupCtx, loggedUser)
	if err != nil {
		return nil, translateERPError(err, "resolve customer")
	}
	if customer == "" {
		s.logger.Info("login rejected: no customer linked", zap.String("username", loggedUser))
		return nil, fmt.Errorf("login %s: %w", loggedUser, ErrNoCustomer)
	}

	now := s.now()
	session := &domain.PortalSession{
		Username:     loggedUser,
		FullName:     result.FullName,
		CustomerName: customer,
		AuthMode:     mode,
		ExpiresAt:    now.Add(s.ttl),
		LastSeenAt:   now,
	}
	if mode == domain.AuthModeSession {
		session.ERPSid = result.Session.SID
		session.ERPCSRFToken = result.Session.CSRFToken
	}
	if r != nil {
		session.UserAgent = r.UserAgent()
		session.IPAddress = clientIP(r)
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.tokens.Issue(session.ID, session.Username, session.CustomerName, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", session.Username),
		zap.String("customer", session.CustomerName),
		zap.String("auth_mode", string(mode)),
	)

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toAuthUserDTO(auth.FromSession(session)),
	}, nil
}

// Logout ends the ERP session (session mode) and clears the portal session
func (s *AuthService) Logout(ctx context.Context) error {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	if user.ERPSession != nil {
		if err := s.erp.Logout(auth.ERPContext(ctx)); err != nil {
			s.logger.Warn("erp logout failed", zap.String("username", user.Username), zap.Error(err))
		}
	}
	if err := s.sessions.Clear(ctx, user.SessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("user logged out", zap.String("username", user.Username))
	return nil
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context) (*domain.AuthUserDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	dto := toAuthUserDTO(user)
	return &dto, nil
}

func toAuthUserDTO(u *auth.UserContext) domain.AuthUserDTO {
	return domain.AuthUserDTO{
		Username:  u.Username,
		FullName:  u.FullName,
		Customer:  u.CustomerName,
		AuthMode:  u.AuthMode,
		ExpiresAt: u.ExpiresAt,
	}
}

// customerFromContext returns the authenticated customer for ctx
func customerFromContext(ctx context.Context) (*auth.UserContext, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if user.CustomerName == "" {
		return nil, ErrNoCustomer
	}
	return user, nil
}

// clientIP prefers proxy headers over the socket address
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		return addr[:i]
	}
	return addr
}
