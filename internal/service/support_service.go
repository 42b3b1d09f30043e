package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/mapper"
	"go.uber.org/zap"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 50
)

// SupportService forwards complaints, feedback and return requests to the ERP
type SupportService struct {
	erp       SupportERP
	maxUpload int64
	logger    *zap.Logger
}

func NewSupportService(erpClient SupportERP, storageCfg *config.StorageConfig, logger *zap.Logger) *SupportService {
	return &SupportService{
		erp:       erpClient,
		maxUpload: storageCfg.MaxUploadSizeMB << 20,
		logger:    logger,
	}
}

// CreateComplaint files a complaint for the current customer
func (s *SupportService) CreateComplaint(ctx context.Context, req domain.ComplaintRequest) (*domain.SupportSubmissionDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name, err := s.erp.CreateComplaint(ctxFor(ctx), domain.Complaint{
		Customer:      user.CustomerName,
		Subject:       strings.TrimSpace(req.Subject),
		ComplaintType: req.ComplaintType,
		Details:       strings.TrimSpace(req.Details),
		Priority:      req.Priority,
		Attachment:    req.Attachment,
	})
	if err != nil {
		return nil, translateERPError(err, "create complaint")
	}
	s.logger.Info("complaint filed", zap.String("name", name), zap.String("customer", user.CustomerName))
	return &domain.SupportSubmissionDTO{Name: name, Doctype: domain.DoctypeCustomerComplaint}, nil
}

// CreateFeedback files feedback for the current customer
func (s *SupportService) CreateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.SupportSubmissionDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name, err := s.erp.CreateFeedback(ctxFor(ctx), domain.Feedback{
		Customer:     user.CustomerName,
		Subject:      strings.TrimSpace(req.Subject),
		FeedbackType: req.FeedbackType,
		Rating:       req.Rating,
		Details:      strings.TrimSpace(req.Details),
		Attachment:   req.Attachment,
	})
	if err != nil {
		return nil, translateERPError(err, "create feedback")
	}
	s.logger.Info("feedback filed", zap.String("name", name), zap.String("customer", user.CustomerName))
	return &domain.SupportSubmissionDTO{Name: name, Doctype: domain.DoctypeCustomerFeedback}, nil
}

// CreateReturnRequest files a sales return request for the current customer
func (s *SupportService) CreateReturnRequest(ctx context.Context, req domain.ReturnRequestInput) (*domain.SupportSubmissionDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name, err := s.erp.CreateReturnRequest(ctxFor(ctx), domain.ReturnRequest{
		Customer:   user.CustomerName,
		SalesOrder: strings.TrimSpace(req.SalesOrder),
		ItemCode:   strings.TrimSpace(req.ItemCode),
		Qty:        req.Qty,
		Reason:     strings.TrimSpace(req.Reason),
		Details:    strings.TrimSpace(req.Details),
		Attachment: req.Attachment,
	})
	if err != nil {
		return nil, translateERPError(err, "create return request")
	}
	s.logger.Info("return request filed", zap.String("name", name), zap.String("customer", user.CustomerName))
	return &domain.SupportSubmissionDTO{Name: name, Doctype: domain.DoctypeReturnRequest}, nil
}

// UploadAttachment stores a file in the ERP so its URL can be referenced by
// a support request.
func (s *SupportService) UploadAttachment(ctx context.Context, upload *Upload) (*domain.AttachmentDTO, error) {
	if _, err := customerFromContext(ctx); err != nil {
		return nil, err
	}
	if upload == nil || upload.Content == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if s.maxUpload > 0 && upload.Size > s.maxUpload {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrInvalidInput, s.maxUpload>>20)
	}
	filename := filepath.Base(strings.TrimSpace(upload.Filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}

	file, err := s.erp.UploadFile(ctxFor(ctx), filename, upload.Content, "", "")
	if err != nil {
		return nil, translateERPError(err, "upload file")
	}
	dto := mapper.ToAttachmentDTO(file)
	return &dto, nil
}

// News returns the latest website news
func (s *SupportService) News(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	if limit < 1 {
		limit = defaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}
	news, err := s.erp.ListNews(ctxFor(ctx), limit)
	if err != nil {
		return nil, translateERPError(err, "list news")
	}
	return nonNil(news), nil
}
