package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/http/handler"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ============================================================================
// Activity
// ============================================================================

type stubAuditService struct {
	params service.AuditLogQueryParams
	logs   []domain.AuditLog
	total  int64
	err    error
}

func (s *stubAuditService) ListMine(ctx context.Context, params service.AuditLogQueryParams) ([]domain.AuditLog, int64, error) {
	s.params = params
	return s.logs, s.total, s.err
}

func TestAuditHandler_ListMine(t *testing.T) {
	performed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc := &stubAuditService{
		logs: []domain.AuditLog{
			{ID: uuid.New(), Action: domain.AuditActionUpdate, EntityType: "draft_order", EntityID: "CEM-50", StatusCode: 200, NewValues: `{"qty":4}`, PerformedAt: performed},
			{ID: uuid.New(), Action: domain.AuditActionLogin, EntityType: "session", StatusCode: 200, NewValues: "null", PerformedAt: performed},
		},
		total: 45,
	}
	h := handler.NewAuditHandler(svc, zap.NewNop())

	rec := serve(http.HandlerFunc(h.ListMine), http.MethodGet,
		"/activity?page=2&pageSize=20&action=update&entityType=draft_order&startTime=2024-04-01T00:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.params.Action)
	assert.Equal(t, domain.AuditActionUpdate, *svc.params.Action)
	assert.Equal(t, "draft_order", svc.params.EntityType)
	require.NotNil(t, svc.params.StartTime)
	assert.Nil(t, svc.params.EndTime)

	var resp handler.AuditLogListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Data, 2)
	assert.JSONEq(t, `{"qty":4}`, string(resp.Data[0].NewValues))
	assert.Equal(t, "2024-05-01T09:30:00Z", resp.Data[0].PerformedAt)
	assert.Empty(t, resp.Data[1].NewValues)
}

func TestAuditHandler_ListMine_BadTime(t *testing.T) {
	svc := &stubAuditService{}
	h := handler.NewAuditHandler(svc, zap.NewNop())

	rec := serve(http.HandlerFunc(h.ListMine), http.MethodGet, "/activity?endTime=yesterday")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeAPIError(t, rec).Detail, "endTime")
}

func TestAuditHandler_ListMine_ClampsPageSize(t *testing.T) {
	svc := &stubAuditService{}
	h := handler.NewAuditHandler(svc, zap.NewNop())

	rec := serve(http.HandlerFunc(h.ListMine), http.MethodGet, "/activity?pageSize=1000")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, svc.params.PageSize)
}

// ============================================================================
// Dashboard
// ============================================================================

type stubDashboardService struct {
	summary *domain.DashboardDTO
	err     error
}

func (s *stubDashboardService) Summary(ctx context.Context) (*domain.DashboardDTO, error) {
	return s.summary, s.err
}

func TestDashboardHandler_Summary(t *testing.T) {
	svc := &stubDashboardService{summary: &domain.DashboardDTO{
		Customer:        "Acme Ltd",
		SubmittedOrders: 4,
		PartialFailures: []string{"payments"},
	}}
	h := handler.NewDashboardHandler(svc, zap.NewNop())

	rec := serve(http.HandlerFunc(h.Summary), http.MethodGet, "/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.DashboardDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.SubmittedOrders)
	assert.Equal(t, []string{"payments"}, summary.PartialFailures)
}

func TestDashboardHandler_Unauthorized(t *testing.T) {
	h := handler.NewDashboardHandler(&stubDashboardService{err: service.ErrUnauthorized}, zap.NewNop())

	rec := serve(http.HandlerFunc(h.Summary), http.MethodGet, "/dashboard")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
