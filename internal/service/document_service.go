package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/repository"
	"github.com/lordsmint/portal-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PDFDocument is a rendered print of an ERP document
type PDFDocument struct {
	Doctype  string
	Name     string
	Format   string
	Data     []byte
	Archived bool
}

// Filename is the download name offered to the browser
func (d *PDFDocument) Filename() string {
	return strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(d.Name) + ".pdf"
}

// DocumentService renders document PDFs and keeps prints of submitted
// documents in the archive. Drafts can still change and are always rendered.
type DocumentService struct {
	erp     PrintERP
	store   storage.Storage
	archive *repository.ArchivedDocumentRepository
	logger  *zap.Logger
}

// NewDocumentService creates a document service. A nil store or archive
// disables archiving.
func NewDocumentService(erpClient PrintERP, store storage.Storage, archive *repository.ArchivedDocumentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		erp:     erpClient,
		store:   store,
		archive: archive,
		logger:  logger,
	}
}

func (s *DocumentService) archiving() bool {
	return s.store != nil && s.archive != nil
}

// Render returns the PDF of doctype/name using the first print format the ERP
// accepts.
func (s *DocumentService) Render(ctx context.Context, doctype, name string, status domain.DocStatus, formats []string) (*PDFDocument, error) {
	immutable := status == domain.DocStatusSubmitted && s.archiving()

	if immutable {
		if doc := s.fromArchive(ctx, doctype, name, formats); doc != nil {
			return doc, nil
		}
	}

	data, format, err := s.erp.DownloadPDFWithFallback(ctx, doctype, name, formats)
	if err != nil {
		if translated := translateERPError(err, "render "+doctype); errors.Is(translated, ErrNotFound) {
			return nil, translated
		}
		s.logger.Warn("failed to render document",
			zap.String("doctype", doctype),
			zap.String("name", name),
			zap.Strings("formats", formats),
			zap.Error(err))
		return nil, fmt.Errorf("render %s %s: %w", doctype, name, ErrDocumentUnavailable)
	}

	doc := &PDFDocument{Doctype: doctype, Name: name, Format: format, Data: data}
	if immutable {
		s.keep(ctx, doc)
	}
	return doc, nil
}

func (s *DocumentService) fromArchive(ctx context.Context, doctype, name string, formats []string) *PDFDocument {
	for _, format := range formats {
		entry, err := s.archive.Find(ctx, doctype, name, format)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("archive lookup failed", zap.String("doctype", doctype), zap.String("name", name), zap.Error(err))
			}
			continue
		}

		rc, err := s.store.Get(ctx, entry.StoragePath)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Object vanished, forget the entry and render again
				_ = s.archive.Delete(ctx, entry)
			} else {
				s.logger.Warn("archive read failed", zap.String("key", entry.StoragePath), zap.Error(err))
			}
			return nil
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			s.logger.Warn("archive read failed", zap.String("key", entry.StoragePath), zap.Error(err))
			return nil
		}
		return &PDFDocument{Doctype: doctype, Name: name, Format: format, Data: data, Archived: true}
	}
	return nil
}

// keep is best effort; the caller already has the rendered PDF
func (s *DocumentService) keep(ctx context.Context, doc *PDFDocument) {
	key := storage.ArchiveKey(doc.Doctype, doc.Name, doc.Format)
	size, err := s.store.Put(ctx, key, "application/pdf", bytes.NewReader(doc.Data))
	if err != nil {
		s.logger.Warn("failed to archive document", zap.String("key", key), zap.Error(err))
		return
	}
	err = s.archive.Upsert(ctx, &domain.ArchivedDocument{
		Doctype:     doc.Doctype,
		DocName:     doc.Name,
		PrintFormat: doc.Format,
		StoragePath: key,
		Size:        size,
	})
	if err != nil {
		s.logger.Warn("failed to record archived document", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Debug("document archived", zap.String("key", key), zap.Int64("size", size))
}
