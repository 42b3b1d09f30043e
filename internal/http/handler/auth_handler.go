package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// AuthService is the sign-in flow the handler drives
type AuthService interface {
	Login(ctx context.Context, r *http.Request, req domain.LoginRequest) (*domain.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.AuthUserDTO, error)
}

type AuthHandler struct {
	authService AuthService
	sessionCfg  *config.SessionConfig
	logger      *zap.Logger
}

func NewAuthHandler(authService AuthService, sessionCfg *config.SessionConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionCfg:  sessionCfg,
		logger:      logger,
	}
}

// Login godoc
// @Summary Sign in to the portal
// @Description Verifies the credentials against the ERP, resolves the linked customer and opens a portal session. The session token is set as an HttpOnly cookie and also returned in the body.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError "Invalid credentials"
// @Failure 403 {object} domain.APIError "No customer linked to user"
// @Failure 429 {object} domain.ErrorResponse
// @Failure 502 {object} domain.APIError "ERP unavailable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	resp, err := h.authService.Login(r.Context(), r, req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondServiceError(w, h.logger, err, "session")
		return
	}

	http.SetCookie(w, h.sessionCookie(resp.Token, resp.ExpiresAt))
	respondJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Ends the portal session (and the ERP session in session mode) and clears the cookie
// @Tags Auth
// @Success 204
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil && !errors.Is(err, service.ErrUnauthorized) {
		h.logger.Warn("logout did not complete cleanly", zap.Error(err))
	}
	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Get current user
// @Description Returns the signed-in user, their customer and how the portal talks to the ERP for them
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.sessionCfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
