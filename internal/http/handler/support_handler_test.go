package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/http/handler"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSupportService struct {
	complaint domain.ComplaintRequest
	feedback  domain.FeedbackRequest
	upload    *service.Upload
	newsLimit int
	err       error
}

func (s *stubSupportService) CreateComplaint(ctx context.Context, req domain.ComplaintRequest) (*domain.SupportSubmissionDTO, error) {
	s.complaint = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SupportSubmissionDTO{Name: "CC-0001", Doctype: domain.DoctypeCustomerComplaint}, nil
}

func (s *stubSupportService) CreateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.SupportSubmissionDTO, error) {
	s.feedback = req
	return &domain.SupportSubmissionDTO{Name: "CF-0001", Doctype: domain.DoctypeCustomerFeedback}, nil
}

func (s *stubSupportService) CreateReturnRequest(ctx context.Context, req domain.ReturnRequestInput) (*domain.SupportSubmissionDTO, error) {
	return &domain.SupportSubmissionDTO{Name: "SRR-0001", Doctype: domain.DoctypeReturnRequest}, nil
}

func (s *stubSupportService) UploadAttachment(ctx context.Context, upload *service.Upload) (*domain.AttachmentDTO, error) {
	s.upload = upload
	return &domain.AttachmentDTO{Name: "FILE-1", FileName: upload.Filename, FileURL: "/files/" + upload.Filename}, nil
}

func (s *stubSupportService) News(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	s.newsLimit = limit
	return []domain.NewsItem{{Name: "NEWS-1", Title: "Price review"}}, nil
}

func supportRouter(svc handler.SupportService) http.Handler {
	h := handler.NewSupportHandler(svc, 1, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/support/complaints", h.CreateComplaint)
	r.Post("/support/feedback", h.CreateFeedback)
	r.Post("/support/returns", h.CreateReturnRequest)
	r.Post("/support/attachments", h.UploadAttachment)
	r.Get("/news", h.News)
	return r
}

func TestSupportHandler_CreateComplaint(t *testing.T) {
	svc := &stubSupportService{}
	rec := sendJSON(supportRouter(svc), http.MethodPost, "/support/complaints",
		`{"subject":"Broken bags","complaintType":"Delivery","details":"Five bags torn","priority":"High"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Broken bags", svc.complaint.Subject)
	assert.Contains(t, rec.Body.String(), `"name":"CC-0001"`)
}

func TestSupportHandler_CreateComplaint_Validation(t *testing.T) {
	svc := &stubSupportService{}
	rec := sendJSON(supportRouter(svc), http.MethodPost, "/support/complaints",
		`{"subject":"Broken bags","complaintType":"Weather","details":"x","priority":"Urgent"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Contains(t, apiErr.Errors, "complaintType")
	assert.Contains(t, apiErr.Errors, "priority")
	assert.Empty(t, svc.complaint.Subject)
}

func TestSupportHandler_CreateComplaint_NoCustomer(t *testing.T) {
	rec := sendJSON(supportRouter(&stubSupportService{err: service.ErrNoCustomer}), http.MethodPost, "/support/complaints",
		`{"subject":"s","complaintType":"Other","details":"d","priority":"Low"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSupportHandler_Feedback_RatingRange(t *testing.T) {
	svc := &stubSupportService{}
	router := supportRouter(svc)

	rec := sendJSON(router, http.MethodPost, "/support/feedback", `{"subject":"s","feedbackType":"Service","rating":6,"details":"d"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = sendJSON(router, http.MethodPost, "/support/feedback", `{"subject":"s","feedbackType":"Service","rating":5,"details":"d"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, svc.feedback.Rating)
}

func TestSupportHandler_UploadAttachment(t *testing.T) {
	svc := &stubSupportService{}
	rec := httptest.NewRecorder()
	supportRouter(svc).ServeHTTP(rec, multipartRequest(t, "/support/attachments", "file", "photo.jpg", []byte("img")))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.upload)
	assert.Equal(t, "photo.jpg", svc.upload.Filename)
	assert.Contains(t, rec.Body.String(), `"fileUrl":"/files/photo.jpg"`)
}

func TestSupportHandler_UploadAttachment_MissingFile(t *testing.T) {
	svc := &stubSupportService{}
	rec := httptest.NewRecorder()
	supportRouter(svc).ServeHTTP(rec, multipartRequest(t, "/support/attachments", "other", "photo.jpg", []byte("img")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.upload)
}

func TestSupportHandler_News(t *testing.T) {
	svc := &stubSupportService{}
	rec := serve(supportRouter(svc), http.MethodGet, "/news?limit=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.newsLimit)
	assert.Contains(t, rec.Body.String(), "Price review")

	serve(supportRouter(svc), http.MethodGet, "/news")
	assert.Equal(t, 0, svc.newsLimit)
}
