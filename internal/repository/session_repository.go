package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/domain"
	"gorm.io/gorm"
)

// SessionRepository stores portal sessions
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.PortalSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID returns gorm.ErrRecordNotFound when the session does not exist
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PortalSession, error) {
	var session domain.PortalSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch records activity on a session
func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.PortalSession{}).
		Where("id = ?", id).
		UpdateColumn("last_seen_at", at).Error
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.PortalSession{}).Error
}

// DeleteExpired removes sessions that expired before now
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.PortalSession{})
	return result.RowsAffected, result.Error
}

// CountActiveByUsername counts a user's unexpired sessions
func (r *SessionRepository) CountActiveByUsername(ctx context.Context, username string, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PortalSession{}).
		Where("username = ? AND expires_at > ?", username, now).
		Count(&count).Error
	return count, err
}
