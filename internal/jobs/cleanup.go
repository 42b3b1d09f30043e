package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	SessionCleanupJobName = "session_cleanup"
	DraftCleanupJobName   = "draft_cleanup"
	AuditCleanupJobName   = "audit_cleanup"
)

// SessionPurger drops portal sessions past their expiry
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// DraftPurger drops open drafts untouched for longer than maxAge
type DraftPurger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// AuditPurger drops audit entries older than the retention period
type AuditPurger interface {
	CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error)
}

// CleanupConfig holds the schedules of the housekeeping jobs. An empty cron
// expression disables that job.
type CleanupConfig struct {
	SessionCron        string
	DraftCron          string
	DraftMaxAge        time.Duration
	AuditCron          string
	AuditRetentionDays int
}

// SessionCleanup removes expired portal sessions
func SessionCleanup(sessions SessionPurger, logger *zap.Logger) Job {
	return func(ctx context.Context) error {
		removed, err := sessions.PurgeExpired(ctx)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("expired sessions removed", zap.Int64("count", removed))
		}
		return nil
	}
}

// DraftCleanup removes abandoned draft orders
func DraftCleanup(drafts DraftPurger, maxAge time.Duration, logger *zap.Logger) Job {
	return func(ctx context.Context) error {
		removed, err := drafts.PurgeStale(ctx, maxAge)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("stale draft orders removed",
				zap.Int64("count", removed),
				zap.Duration("max_age", maxAge))
		}
		return nil
	}
}

// AuditCleanup enforces the audit log retention period
func AuditCleanup(audit AuditPurger, retentionDays int) Job {
	return func(ctx context.Context) error {
		_, err := audit.CleanupOldLogs(ctx, retentionDays)
		return err
	}
}

// RegisterCleanupJobs adds the housekeeping jobs that are configured.
// Draft cleanup needs a positive max age and audit cleanup a positive
// retention; otherwise they are skipped.
func RegisterCleanupJobs(s *Scheduler, cfg CleanupConfig, sessions SessionPurger, drafts DraftPurger, audit AuditPurger, logger *zap.Logger) error {
	if cfg.SessionCron != "" {
		if err := s.AddJob(SessionCleanupJobName, cfg.SessionCron, SessionCleanup(sessions, logger)); err != nil {
			return err
		}
	}
	if cfg.DraftCron != "" && cfg.DraftMaxAge > 0 {
		if err := s.AddJob(DraftCleanupJobName, cfg.DraftCron, DraftCleanup(drafts, cfg.DraftMaxAge, logger)); err != nil {
			return err
		}
	}
	if cfg.AuditCron != "" && cfg.AuditRetentionDays > 0 {
		if err := s.AddJob(AuditCleanupJobName, cfg.AuditCron, AuditCleanup(audit, cfg.AuditRetentionDays)); err != nil {
			return err
		}
	} else {
		logger.Info("audit log retention disabled, entries are kept")
	}
	return nil
}
