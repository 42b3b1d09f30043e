package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/database"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/http/handler"
	"github.com/lordsmint/portal-api/internal/http/middleware"
	"github.com/lordsmint/portal-api/internal/http/router"
	"github.com/lordsmint/portal-api/internal/observability"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySessions struct {
	sessions map[uuid.UUID]*domain.PortalSession
}

func (m *memorySessions) Get(ctx context.Context, id uuid.UUID) (*domain.PortalSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) Set(ctx context.Context, s *domain.PortalSession) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessions) Clear(ctx context.Context, id uuid.UUID) error {
	delete(m.sessions, id)
	return nil
}

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

// orders and drafts record which handler a request reached
type routeRecorder struct {
	hit string
}

func (r *routeRecorder) List(ctx context.Context, params service.ListParams) (*domain.PageResponse, error) {
	r.hit = "orders.list"
	return &domain.PageResponse{Data: []domain.OrderSummaryDTO{}}, nil
}

func (r *routeRecorder) Details(ctx context.Context, name string) (*domain.OrderDetailsDTO, error) {
	r.hit = "orders.details:" + name
	return &domain.OrderDetailsDTO{}, nil
}

func (r *routeRecorder) Timeline(ctx context.Context, name string) (*domain.OrderTimelineDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) DeliveryNotePDF(ctx context.Context, orderName, noteName string) (*service.PDFDocument, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) InvoicePDF(ctx context.Context, orderName, invoiceName string) (*service.PDFDocument, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) Get(ctx context.Context) (*domain.DraftOrderDTO, error) {
	user, _ := auth.FromContext(ctx)
	r.hit = "draft.get:" + user.Username
	return &domain.DraftOrderDTO{Items: []domain.DraftOrderItemDTO{}}, nil
}

func (r *routeRecorder) SetWarehouse(ctx context.Context, req domain.SetWarehouseRequest) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) SetPlant(ctx context.Context, req domain.SetPlantRequest) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) AddItem(ctx context.Context, req domain.AddDraftItemRequest) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) UpdateItemQty(ctx context.Context, itemCode string, req domain.UpdateDraftItemRequest) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) RemoveItem(ctx context.Context, itemCode string) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) Clear(ctx context.Context) (*domain.DraftOrderDTO, error) {
	return nil, service.ErrNotFound
}

func (r *routeRecorder) Submit(ctx context.Context, receipt *service.Upload) (*domain.SubmitDraftResponse, error) {
	return nil, service.ErrDraftEmpty
}

func (r *routeRecorder) Submissions(ctx context.Context, limit int) ([]domain.DraftOrderDTO, error) {
	r.hit = "draft.submissions"
	return []domain.DraftOrderDTO{}, nil
}

type fixture struct {
	handler  http.Handler
	recorder *routeRecorder
	token    string
}

func newFixture(t *testing.T, erpErr error) *fixture {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		App:       config.AppConfig{Environment: "development"},
		Session:   config.SessionConfig{SigningKey: "router-test-signing-key-0123456789", TTL: 60, CookieName: "portal_session", Issuer: "portal-api"},
		Server:    config.ServerConfig{EnableMetrics: true},
		Security:  config.SecurityConfig{ContentTypeNosniff: true, FrameOptions: "DENY"},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 100, RequestsPerMinuteAuth: 100},
	}

	sessions := &memorySessions{sessions: map[uuid.UUID]*domain.PortalSession{}}
	session := &domain.PortalSession{
		Username:     "buyer@acme.test",
		CustomerName: "Acme Ltd",
		AuthMode:     domain.AuthModeToken,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	session.ID = uuid.New()
	require.NoError(t, sessions.Set(context.Background(), session))

	tokens := auth.NewTokenIssuer(&cfg.Session)
	token, err := tokens.Issue(session.ID, session.Username, session.CustomerName, session.ExpiresAt)
	require.NoError(t, err)

	rec := &routeRecorder{}
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(nil, &cfg.Session, logger),
		Orders:     handler.NewOrderHandler(rec, logger),
		DraftOrder: handler.NewDraftOrderHandler(rec, 1, logger),
		Billing:    handler.NewBillingHandler(nil, logger),
		Catalog:    handler.NewCatalogHandler(nil, logger),
		Support:    handler.NewSupportHandler(nil, 1, logger),
		Dashboard:  handler.NewDashboardHandler(nil, logger),
		Audit:      handler.NewAuditHandler(nil, logger),
	}

	rt := router.NewRouter(
		cfg,
		logger,
		db,
		nil,
		pinger{err: erpErr},
		observability.NewMetrics(),
		auth.NewMiddleware(&cfg.Session, tokens, sessions, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		middleware.NewAuditMiddleware(nil, nil, logger),
		handlers,
	)
	return &fixture{handler: rt.Setup(), recorder: rec, token: token}
}

func (f *fixture) do(method, target string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/health", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = f.do(http.MethodGet, "/health/db", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"open_connections"`)

	rec = f.do(http.MethodGet, "/health/ready", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body["checks"], "erp")
	assert.NotContains(t, body["checks"], "redis")
}

func TestRouter_ReadinessFailsWhenERPIsDown(t *testing.T) {
	f := newFixture(t, errors.New("connection refused"))

	rec := f.do(http.MethodGet, "/health/ready", false)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/health", false)

	rec := f.do(http.MethodGet, "/metrics", false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "portal_http_requests_total"))
}

func TestRouter_ProtectedRoutesRequireSession(t *testing.T) {
	f := newFixture(t, nil)

	for _, target := range []string{"/api/v1/orders", "/api/v1/orders/draft", "/api/v1/dashboard", "/api/v1/catalog/items"} {
		rec := f.do(http.MethodGet, target, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
	assert.Empty(t, f.recorder.hit)
}

func TestRouter_DraftRoutesTakePrecedenceOverOrderName(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/api/v1/orders/draft", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "draft.get:buyer@acme.test", f.recorder.hit)

	rec = f.do(http.MethodGet, "/api/v1/orders/SO-0001", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "orders.details:SO-0001", f.recorder.hit)

	rec = f.do(http.MethodGet, "/api/v1/orders/draft/submissions", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "draft.submissions", f.recorder.hit)

	rec = f.do(http.MethodPost, "/api/v1/orders/draft/submit", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/api/v1/orders", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
