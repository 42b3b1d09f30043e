package handler

import (
	"context"
	"net/http"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// SupportService files customer support documents in the ERP
type SupportService interface {
	CreateComplaint(ctx context.Context, req domain.ComplaintRequest) (*domain.SupportSubmissionDTO, error)
	CreateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.SupportSubmissionDTO, error)
	CreateReturnRequest(ctx context.Context, req domain.ReturnRequestInput) (*domain.SupportSubmissionDTO, error)
	UploadAttachment(ctx context.Context, upload *service.Upload) (*domain.AttachmentDTO, error)
	News(ctx context.Context, limit int) ([]domain.NewsItem, error)
}

type SupportHandler struct {
	supportService SupportService
	maxUploadMB    int64
	logger         *zap.Logger
}

func NewSupportHandler(supportService SupportService, maxUploadMB int64, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{supportService: supportService, maxUploadMB: maxUploadMB, logger: logger}
}

// CreateComplaint godoc
// @Summary File a complaint
// @Tags Support
// @Accept json
// @Produce json
// @Param request body domain.ComplaintRequest true "Complaint"
// @Success 201 {object} domain.SupportSubmissionDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /support/complaints [post]
func (h *SupportHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req domain.ComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.supportService.CreateComplaint(r.Context(), req)
	h.respondCreated(w, "complaint", created, err)
}

// CreateFeedback godoc
// @Summary Send feedback
// @Tags Support
// @Accept json
// @Produce json
// @Param request body domain.FeedbackRequest true "Feedback"
// @Success 201 {object} domain.SupportSubmissionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /support/feedback [post]
func (h *SupportHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req domain.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.supportService.CreateFeedback(r.Context(), req)
	h.respondCreated(w, "feedback", created, err)
}

// CreateReturnRequest godoc
// @Summary Request a return
// @Tags Support
// @Accept json
// @Produce json
// @Param request body domain.ReturnRequestInput true "Return request"
// @Success 201 {object} domain.SupportSubmissionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /support/returns [post]
func (h *SupportHandler) CreateReturnRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.ReturnRequestInput
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.supportService.CreateReturnRequest(r.Context(), req)
	h.respondCreated(w, "return request", created, err)
}

// UploadAttachment godoc
// @Summary Upload a support attachment
// @Description Stores a file in the ERP and returns its URL for use in complaints, feedback or returns
// @Tags Support
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.AttachmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Router /support/attachments [post]
func (h *SupportHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	upload, closeFile, ok := readUpload(w, r, "file", h.maxUploadMB, false)
	defer closeFile()
	if !ok {
		return
	}
	attachment, err := h.supportService.UploadAttachment(r.Context(), upload)
	if err != nil {
		respondServiceError(w, h.logger, err, "attachment")
		return
	}
	respondJSON(w, http.StatusCreated, attachment)
}

// News godoc
// @Summary Latest news
// @Tags Support
// @Produce json
// @Param limit query int false "Number of entries (max 50)" default(10)
// @Success 200 {object} domain.ListResponse{data=[]domain.NewsItem}
// @Security BearerAuth
// @Router /news [get]
func (h *SupportHandler) News(w http.ResponseWriter, r *http.Request) {
	news, err := h.supportService.News(r.Context(), parseIntQuery(r, "limit", 0))
	if err != nil {
		respondServiceError(w, h.logger, err, "news")
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: news})
}

func (h *SupportHandler) respondCreated(w http.ResponseWriter, what string, created *domain.SupportSubmissionDTO, err error) {
	if err != nil {
		respondServiceError(w, h.logger, err, what)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
