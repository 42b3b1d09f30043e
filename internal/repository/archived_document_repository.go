package repository

import (
	"context"

	"github.com/lordsmint/portal-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchivedDocumentRepository indexes PDFs kept in storage
type ArchivedDocumentRepository struct {
	db *gorm.DB
}

func NewArchivedDocumentRepository(db *gorm.DB) *ArchivedDocumentRepository {
	return &ArchivedDocumentRepository{db: db}
}

// Find returns gorm.ErrRecordNotFound when the document was never archived
func (r *ArchivedDocumentRepository) Find(ctx context.Context, doctype, name, format string) (*domain.ArchivedDocument, error) {
	var doc domain.ArchivedDocument
	err := r.db.WithContext(ctx).
		Where("doctype = ? AND doc_name = ? AND print_format = ?", doctype, name, format).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upsert records doc, replacing the storage path of an existing entry
func (r *ArchivedDocumentRepository) Upsert(ctx context.Context, doc *domain.ArchivedDocument) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctype"}, {Name: "doc_name"}, {Name: "print_format"}},
		DoUpdates: clause.AssignmentColumns([]string{"storage_path", "size", "updated_at"}),
	}).Create(doc).Error
}

func (r *ArchivedDocumentRepository) Delete(ctx context.Context, doc *domain.ArchivedDocument) error {
	return r.db.WithContext(ctx).Delete(doc).Error
}
