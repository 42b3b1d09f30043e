package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBSessionStore keeps portal sessions in the portal database
type DBSessionStore struct {
	repo   *repository.SessionRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ auth.SessionStore = (*DBSessionStore)(nil)

func NewDBSessionStore(repo *repository.SessionRepository, logger *zap.Logger) *DBSessionStore {
	return &DBSessionStore{repo: repo, logger: logger, now: utcNow}
}

func (s *DBSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.PortalSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	if err := s.repo.Touch(ctx, id, s.now()); err != nil {
		s.logger.Warn("failed to touch session", zap.String("session_id", id.String()), zap.Error(err))
	}
	return session, nil
}

func (s *DBSessionStore) Set(ctx context.Context, session *domain.PortalSession) error {
	if session.LastSeenAt.IsZero() {
		session.LastSeenAt = s.now()
	}
	return s.repo.Create(ctx, session)
}

func (s *DBSessionStore) Clear(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// PurgeExpired removes sessions past their expiry
func (s *DBSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
