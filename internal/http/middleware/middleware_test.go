package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// =============================================================================
// Recovery and request ids
// =============================================================================

func TestRecovery(t *testing.T) {
	h := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestRequestID(t *testing.T) {
	h := RequestID(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

// =============================================================================
// Headers
// =============================================================================

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(&config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
	})(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("Referrer-Policy"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins:   []string{"https://portal.example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}
	h := CORS(cfg, "production", zap.NewNop())(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProductionWithoutOriginsDeniesAll(t *testing.T) {
	h := CORS(&config.CORSConfig{}, "production", zap.NewNop())(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// =============================================================================
// Rate limiting
// =============================================================================

func TestRateLimiter_Login(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:                true,
		RequestsPerMinute:      100,
		RequestsPerMinuteAuth:  100,
		LoginAttemptsPerMinute: 2,
	}, zap.NewNop())
	h := rl.LimitLogin(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// A different client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "203.0.113.8:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_LoginIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:                true,
		RequestsPerMinute:      100,
		RequestsPerMinuteAuth:  100,
		LoginAttemptsPerMinute: 3,
		WhitelistIPs:           []string{"10.0.0.1"},
	}, zap.NewNop())
	h := rl.LimitLogin(http.HandlerFunc(okHandler))

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "198.51.100.20:51000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		if i%2 == 0 {
			req.Header.Set("X-Real-IP", "10.0.0.1")
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)
}

func TestRateLimiter_TrustedProxyForwardsClient(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:                true,
		RequestsPerMinute:      100,
		RequestsPerMinuteAuth:  100,
		LoginAttemptsPerMinute: 1,
		TrustedProxies:         []string{"10.1.0.0/16"},
	}, zap.NewNop())
	h := rl.LimitLogin(http.HandlerFunc(okHandler))

	login := func(client string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:443"
		req.Header.Set("X-Forwarded-For", client+", 10.1.9.9")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, login("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, login("203.0.113.1"))
	assert.Equal(t, http.StatusOK, login("203.0.113.2"))
}

func TestRateLimiter_WhitelistAndDisabled(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistPaths:    []string{"/health/*"},
		WhitelistIPs:      []string{"10.0.0.1"},
	}, zap.NewNop())
	h := rl.LimitByIP(http.HandlerFunc(okHandler))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.RemoteAddr = "10.0.0.1:3000"
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	off := NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())
	h = off.LimitByIP(http.HandlerFunc(okHandler))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	direct := NewRateLimiter(&config.RateLimitConfig{}, zap.NewNop())
	proxied := NewRateLimiter(&config.RateLimitConfig{TrustedProxies: []string{"192.0.2.10", "10.0.0.0/8", "not-an-ip"}}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", direct.clientIP(req))
	assert.Equal(t, "192.0.2.10", proxied.clientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.1")
	assert.Equal(t, "192.0.2.10", direct.clientIP(req))
	assert.Equal(t, "198.51.100.1", proxied.clientIP(req))

	req.Header.Set("X-Forwarded-For", "1.2.3.4, 203.0.113.1 , 10.0.0.1")
	assert.Equal(t, "192.0.2.10", direct.clientIP(req))
	assert.Equal(t, "203.0.113.1", proxied.clientIP(req))

	req.RemoteAddr = "198.51.100.50:5555"
	assert.Equal(t, "198.51.100.50", proxied.clientIP(req))
}

// =============================================================================
// Audit
// =============================================================================

type recordingAuditor struct {
	mu      sync.Mutex
	entries []service.LogEntry
	users   []*auth.UserContext
}

func (a *recordingAuditor) Log(ctx context.Context, _ *http.Request, entry service.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	user, _ := auth.FromContext(ctx)
	a.users = append(a.users, user)
	return nil
}

func newAuditRouter(auditor Auditor) http.Handler {
	m := NewAuditMiddleware(auditor, nil, zap.NewNop())
	m.async = func(fn func()) { fn() }

	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := &auth.UserContext{Username: "buyer@acme.test", CustomerName: "ACME"}
			next.ServeHTTP(w, r.WithContext(auth.WithUserContext(r.Context(), user)))
		})
	}

	r := chi.NewRouter()
	r.Use(m.Audit)
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r.Group(func(r chi.Router) {
		r.Use(fakeAuth, CaptureUser)
		r.Post("/api/v1/orders/draft/submit", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		r.Patch("/api/v1/orders/draft/items/{itemCode}", okHandler)
		r.Post("/api/v1/support/complaints", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		r.Get("/api/v1/orders", okHandler)
	})
	return r
}

func TestAudit_FailedLoginKeepsUsernameNotPassword(t *testing.T) {
	auditor := &recordingAuditor{}
	h := newAuditRouter(auditor)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"someone@acme.test","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, domain.AuditActionLogin, entry.Action)
	assert.Equal(t, "session", entry.EntityType)
	assert.Equal(t, "someone@acme.test", entry.Username)
	assert.Equal(t, http.StatusUnauthorized, entry.StatusCode)
	assert.Nil(t, entry.NewValues)
}

func TestAudit_SubmitAndItemUpdate(t *testing.T) {
	auditor := &recordingAuditor{}
	h := newAuditRouter(auditor)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/draft/submit", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/orders/draft/items/CEM-50", strings.NewReader(`{"qty":4}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, auditor.entries, 2)
	assert.Equal(t, domain.AuditActionSubmit, auditor.entries[0].Action)
	assert.Equal(t, "draft_order", auditor.entries[0].EntityType)
	require.NotNil(t, auditor.users[0])
	assert.Equal(t, "buyer@acme.test", auditor.users[0].Username)

	assert.Equal(t, domain.AuditActionUpdate, auditor.entries[1].Action)
	assert.Equal(t, "CEM-50", auditor.entries[1].EntityID)
	assert.Equal(t, map[string]interface{}{"qty": float64(4)}, auditor.entries[1].NewValues)
}

func TestAudit_SkipsReadsAndFailures(t *testing.T) {
	auditor := &recordingAuditor{}
	h := newAuditRouter(auditor)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/support/complaints", nil))

	assert.Empty(t, auditor.entries)
}

func TestAudit_BodyStillReadableByHandler(t *testing.T) {
	auditor := &recordingAuditor{}
	m := NewAuditMiddleware(auditor, nil, zap.NewNop())
	m.async = func(fn func()) { fn() }

	var seen string
	h := m.Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		seen = buf.String()
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/support/feedback", strings.NewReader(`{"subject":"Great"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"subject":"Great"}`, seen)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "feedback", auditor.entries[0].EntityType)
}
