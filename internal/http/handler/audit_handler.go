package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

type AuditLogService interface {
	ListMine(ctx context.Context, params service.AuditLogQueryParams) ([]domain.AuditLog, int64, error)
}

// AuditHandler exposes the current user's own activity trail
type AuditHandler struct {
	auditService AuditLogService
	logger       *zap.Logger
}

func NewAuditHandler(auditService AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// AuditLogDTO represents an audit log entry for API response
type AuditLogDTO struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    string          `json:"entityId,omitempty"`
	Method      string          `json:"method,omitempty"`
	Path        string          `json:"path,omitempty"`
	StatusCode  int             `json:"statusCode"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	RequestID   string          `json:"requestId,omitempty"`
	NewValues   json.RawMessage `json:"newValues,omitempty"`
	PerformedAt string          `json:"performedAt"`
}

// AuditLogListResponse represents a paginated list of audit logs
type AuditLogListResponse struct {
	Data       []AuditLogDTO `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// ListMine godoc
// @Summary List my activity
// @Description Returns the current user's audit trail, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param action query string false "Filter by action" Enums(create, update, delete, login, logout, submit)
// @Param entityType query string false "Filter by entity type"
// @Param entityId query string false "Filter by entity ID"
// @Param startTime query string false "Filter by start time (RFC3339)"
// @Param endTime query string false "Filter by end time (RFC3339)"
// @Success 200 {object} AuditLogListResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /activity [get]
func (h *AuditHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := service.AuditLogQueryParams{
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		Page:       page,
		PageSize:   pageSize,
	}

	if actionStr := q.Get("action"); actionStr != "" {
		action := domain.AuditAction(actionStr)
		params.Action = &action
	}

	var ok bool
	if params.StartTime, ok = parseTimeQuery(w, r, "startTime"); !ok {
		return
	}
	if params.EndTime, ok = parseTimeQuery(w, r, "endTime"); !ok {
		return
	}

	logs, total, err := h.auditService.ListMine(r.Context(), params)
	if err != nil {
		respondServiceError(w, h.logger, err, "activity")
		return
	}

	dtos := make([]AuditLogDTO, len(logs))
	for i, log := range logs {
		dtos[i] = toAuditLogDTO(log)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	respondJSON(w, http.StatusOK, AuditLogListResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func parseTimeQuery(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, key+" must be an RFC3339 timestamp")
		return nil, false
	}
	return &t, true
}

func toAuditLogDTO(log domain.AuditLog) AuditLogDTO {
	dto := AuditLogDTO{
		ID:          log.ID.String(),
		Action:      string(log.Action),
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Method:      log.Method,
		Path:        log.Path,
		StatusCode:  log.StatusCode,
		IPAddress:   log.IPAddress,
		RequestID:   log.RequestID,
		PerformedAt: log.PerformedAt.Format(time.RFC3339),
	}
	if log.NewValues != "" && log.NewValues != "null" && json.Valid([]byte(log.NewValues)) {
		dto.NewValues = json.RawMessage(log.NewValues)
	}
	return dto
}
