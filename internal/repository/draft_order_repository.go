package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftOrderRepository stores order-builder drafts and their lines
type DraftOrderRepository struct {
	db *gorm.DB
}

func NewDraftOrderRepository(db *gorm.DB) *DraftOrderRepository {
	return &DraftOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// GetOpenByUsername returns the user's open draft or gorm.ErrRecordNotFound
func (r *DraftOrderRepository) GetOpenByUsername(ctx context.Context, username string) (*domain.DraftOrder, error) {
	var draft domain.DraftOrder
	err := preloadItems(r.db.WithContext(ctx)).
		Where("username = ? AND status = ?", username, domain.DraftOrderStatusOpen).
		Order("created_at DESC").
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DraftOrder, error) {
	var draft domain.DraftOrder
	if err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// Create inserts a draft together with any lines it already has
func (r *DraftOrderRepository) Create(ctx context.Context, draft *domain.DraftOrder) error {
	for i := range draft.Items {
		draft.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Create(draft).Error
}

// Save writes the draft header and replaces its lines
func (r *DraftOrderRepository) Save(ctx context.Context, draft *domain.DraftOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDraft(tx, draft)
	})
}

// UpdateOpen locks the user's open draft, applies fn and writes the result in
// one transaction, so concurrent edits of the same draft apply in turn. An
// error from fn rolls back. Returns gorm.ErrRecordNotFound when the user has
// no open draft.
func (r *DraftOrderRepository) UpdateOpen(ctx context.Context, username string, fn func(*domain.DraftOrder) error) (*domain.DraftOrder, error) {
	var draft domain.DraftOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := preloadItems(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("username = ? AND status = ?", username, domain.DraftOrderStatusOpen).
			Order("created_at DESC").
			First(&draft).Error
		if err != nil {
			return err
		}
		if err := fn(&draft); err != nil {
			return err
		}
		return saveDraft(tx, &draft)
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func saveDraft(tx *gorm.DB, draft *domain.DraftOrder) error {
	if err := tx.Omit(clause.Associations).Save(draft).Error; err != nil {
		return err
	}
	if err := tx.Where("draft_order_id = ?", draft.ID).Delete(&domain.DraftOrderItem{}).Error; err != nil {
		return err
	}
	if len(draft.Items) == 0 {
		return nil
	}
	for i := range draft.Items {
		draft.Items[i].DraftOrderID = draft.ID
		draft.Items[i].Position = i
	}
	return tx.Create(&draft.Items).Error
}

// DeleteStaleOpen removes open drafts not updated since before
func (r *DraftOrderRepository) DeleteStaleOpen(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&domain.DraftOrder{}).
			Select("id").
			Where("status = ? AND updated_at < ?", domain.DraftOrderStatusOpen, before)
		if err := tx.Where("draft_order_id IN (?)", stale).Delete(&domain.DraftOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("status = ? AND updated_at < ?", domain.DraftOrderStatusOpen, before).Delete(&domain.DraftOrder{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}

// ListSubmittedByUsername returns the user's most recently submitted drafts
// with their lines
func (r *DraftOrderRepository) ListSubmittedByUsername(ctx context.Context, username string, limit int) ([]domain.DraftOrder, error) {
	var drafts []domain.DraftOrder
	err := preloadItems(r.db.WithContext(ctx)).
		Where("username = ? AND status = ?", username, domain.DraftOrderStatusSubmitted).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&drafts).Error
	return drafts, err
}
