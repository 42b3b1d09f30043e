package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// BillingService reads the customer's invoices and payments
type BillingService interface {
	ListInvoices(ctx context.Context, params service.ListParams) (*domain.PageResponse, error)
	GetInvoice(ctx context.Context, name string) (*domain.InvoiceDTO, error)
	InvoicePDF(ctx context.Context, name string) (*service.PDFDocument, error)
	ListPayments(ctx context.Context, params service.ListParams) (*domain.PageResponse, error)
	GetPayment(ctx context.Context, name string) (*domain.PaymentDTO, error)
	ReceiptPDF(ctx context.Context, name string) (*service.PDFDocument, error)
}

type BillingHandler struct {
	billingService BillingService
	logger         *zap.Logger
}

func NewBillingHandler(billingService BillingService, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{billingService: billingService, logger: logger}
}

// ListInvoices godoc
// @Summary List sales invoices
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Param search query string false "Invoice name contains"
// @Param fromDate query string false "Posting date from (YYYY-MM-DD)"
// @Param toDate query string false "Posting date to (YYYY-MM-DD)"
// @Param status query string false "Document status" Enums(all, draft, submitted, cancelled)
// @Param sortBy query string false "Sort column" Enums(creation, posting_date, due_date, grand_total, name)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PageResponse{data=[]domain.InvoiceDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices [get]
func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	resp, err := h.billingService.ListInvoices(r.Context(), parseListParams(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "invoices")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetInvoice godoc
// @Summary Get a sales invoice
// @Tags Invoices
// @Produce json
// @Param name path string true "Sales invoice name"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{name} [get]
func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.billingService.GetInvoice(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "invoice")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

// InvoicePDF godoc
// @Summary Download a sales invoice
// @Tags Invoices
// @Produce application/pdf
// @Param name path string true "Sales invoice name"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{name}/pdf [get]
func (h *BillingHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.billingService.InvoicePDF(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "invoice")
		return
	}
	respondPDF(w, doc)
}

// ListPayments godoc
// @Summary List payments
// @Description Submitted payment entries unless another status is requested
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Param fromDate query string false "Posting date from (YYYY-MM-DD)"
// @Param toDate query string false "Posting date to (YYYY-MM-DD)"
// @Param status query string false "Document status" Enums(all, draft, submitted, cancelled)
// @Param sortBy query string false "Sort column" Enums(creation, posting_date, paid_amount, name)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PageResponse{data=[]domain.PaymentDTO}
// @Security BearerAuth
// @Router /payments [get]
func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	resp, err := h.billingService.ListPayments(r.Context(), parseListParams(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "payments")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetPayment godoc
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Param name path string true "Payment entry name"
// @Success 200 {object} domain.PaymentDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /payments/{name} [get]
func (h *BillingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.billingService.GetPayment(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "payment")
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// ReceiptPDF godoc
// @Summary Download a payment receipt
// @Tags Payments
// @Produce application/pdf
// @Param name path string true "Payment entry name"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /payments/{name}/receipt [get]
func (h *BillingHandler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.billingService.ReceiptPDF(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "payment")
		return
	}
	respondPDF(w, doc)
}
