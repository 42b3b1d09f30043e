package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/repository"
	"go.uber.org/zap"
)

// AuditLogService records mutating portal requests
type AuditLogService struct {
	auditRepo *repository.AuditLogRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo *repository.AuditLogRepository, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		logger:    logger,
		now:       utcNow,
	}
}

// LogEntry represents the input for creating an audit log entry
type LogEntry struct {
	Action     domain.AuditAction
	EntityType string
	EntityID   string
	StatusCode int
	NewValues  interface{}
	// Username overrides the user from ctx, e.g. for login where no
	// session exists yet
	Username string
}

// Log creates an audit log entry from context and request
func (s *AuditLogService) Log(ctx context.Context, r *http.Request, entry LogEntry) error {
	auditLog := &domain.AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		StatusCode:  entry.StatusCode,
		Username:    entry.Username,
		NewValues:   "null",
		PerformedAt: s.now(),
	}

	if user, ok := auth.FromContext(ctx); ok {
		if auditLog.Username == "" {
			auditLog.Username = user.Username
		}
		auditLog.CustomerName = user.CustomerName
	}

	if r != nil {
		auditLog.Method = r.Method
		auditLog.Path = r.URL.Path
		auditLog.IPAddress = clientIP(r)
		auditLog.UserAgent = r.UserAgent()
		auditLog.RequestID = r.Header.Get("X-Request-ID")
	}

	if entry.NewValues != nil {
		if raw, err := json.Marshal(entry.NewValues); err == nil {
			auditLog.NewValues = string(raw)
		}
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", string(entry.Action)),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}

// AuditLogQueryParams represents query parameters for listing audit logs
type AuditLogQueryParams struct {
	Action     *domain.AuditAction
	EntityType string
	EntityID   string
	StartTime  *time.Time
	EndTime    *time.Time
	Page       int
	PageSize   int
}

// ListMine returns the current user's audit trail, newest first
func (s *AuditLogService) ListMine(ctx context.Context, params AuditLogQueryParams) ([]domain.AuditLog, int64, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, 0, ErrUnauthorized
	}
	page, pageSize := normalizePagination(params.Page, params.PageSize)
	filter := &repository.AuditLogFilter{
		Username:   user.Username,
		Action:     params.Action,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		StartTime:  params.StartTime,
		EndTime:    params.EndTime,
	}
	return s.auditRepo.List(ctx, filter, page, pageSize)
}

// CleanupOldLogs removes logs older than the specified retention period
func (s *AuditLogService) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	before := s.now().AddDate(0, 0, -retentionDays)
	count, err := s.auditRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		s.logger.Error("failed to cleanup old audit logs",
			zap.Int("retention_days", retentionDays),
			zap.Error(err))
		return 0, err
	}

	if count > 0 {
		s.logger.Info("cleaned up old audit logs",
			zap.Int64("deleted_count", count),
			zap.Int("retention_days", retentionDays))
	}
	return count, nil
}
