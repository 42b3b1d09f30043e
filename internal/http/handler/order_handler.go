package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// OrderService reads the customer's sales orders
type OrderService interface {
	List(ctx context.Context, params service.ListParams) (*domain.PageResponse, error)
	Details(ctx context.Context, name string) (*domain.OrderDetailsDTO, error)
	Timeline(ctx context.Context, name string) (*domain.OrderTimelineDTO, error)
	DeliveryNotePDF(ctx context.Context, orderName, noteName string) (*service.PDFDocument, error)
	InvoicePDF(ctx context.Context, orderName, invoiceName string) (*service.PDFDocument, error)
}

type OrderHandler struct {
	orderService OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// List godoc
// @Summary List sales orders
// @Description Returns one page of the signed-in customer's sales orders. The ERP does not report totals; hasMore is set when the page came back full.
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Param search query string false "Order name contains"
// @Param fromDate query string false "Transaction date from (YYYY-MM-DD)"
// @Param toDate query string false "Transaction date to (YYYY-MM-DD)"
// @Param status query string false "Document status" Enums(all, draft, submitted, cancelled)
// @Param sortBy query string false "Sort column" Enums(creation, transaction_date, grand_total, name)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PageResponse{data=[]domain.OrderSummaryDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.orderService.List(r.Context(), parseListParams(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "orders")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get godoc
// @Summary Get order details
// @Description Returns the order with its delivery notes, invoices, attachments, fulfillment progress and timeline
// @Tags Orders
// @Produce json
// @Param name path string true "Sales order name"
// @Success 200 {object} domain.OrderDetailsDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{name} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.orderService.Details(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "order")
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// Timeline godoc
// @Summary Get order timeline
// @Tags Orders
// @Produce json
// @Param name path string true "Sales order name"
// @Success 200 {object} domain.OrderTimelineDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{name}/timeline [get]
func (h *OrderHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.orderService.Timeline(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "order")
		return
	}
	respondJSON(w, http.StatusOK, timeline)
}

// DeliveryNotePDF godoc
// @Summary Download a delivery note (waybill)
// @Tags Orders
// @Produce application/pdf
// @Param name path string true "Sales order name"
// @Param note path string true "Delivery note name"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{name}/delivery-notes/{note}/pdf [get]
func (h *OrderHandler) DeliveryNotePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.orderService.DeliveryNotePDF(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "note"))
	if err != nil {
		respondServiceError(w, h.logger, err, "delivery note")
		return
	}
	respondPDF(w, doc)
}

// InvoicePDF godoc
// @Summary Download an invoice linked to an order
// @Tags Orders
// @Produce application/pdf
// @Param name path string true "Sales order name"
// @Param invoice path string true "Sales invoice name"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/{name}/invoices/{invoice}/pdf [get]
func (h *OrderHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.orderService.InvoicePDF(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "invoice"))
	if err != nil {
		respondServiceError(w, h.logger, err, "invoice")
		return
	}
	respondPDF(w, doc)
}
