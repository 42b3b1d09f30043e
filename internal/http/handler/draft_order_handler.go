package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// DraftOrderService is the server-side order builder
type DraftOrderService interface {
	Get(ctx context.Context) (*domain.DraftOrderDTO, error)
	SetWarehouse(ctx context.Context, req domain.SetWarehouseRequest) (*domain.DraftOrderDTO, error)
	SetPlant(ctx context.Context, req domain.SetPlantRequest) (*domain.DraftOrderDTO, error)
	AddItem(ctx context.Context, req domain.AddDraftItemRequest) (*domain.DraftOrderDTO, error)
	UpdateItemQty(ctx context.Context, itemCode string, req domain.UpdateDraftItemRequest) (*domain.DraftOrderDTO, error)
	RemoveItem(ctx context.Context, itemCode string) (*domain.DraftOrderDTO, error)
	Clear(ctx context.Context) (*domain.DraftOrderDTO, error)
	Submit(ctx context.Context, receipt *service.Upload) (*domain.SubmitDraftResponse, error)
	Submissions(ctx context.Context, limit int) ([]domain.DraftOrderDTO, error)
}

type DraftOrderHandler struct {
	draftService DraftOrderService
	maxUploadMB  int64
	logger       *zap.Logger
}

func NewDraftOrderHandler(draftService DraftOrderService, maxUploadMB int64, logger *zap.Logger) *DraftOrderHandler {
	return &DraftOrderHandler{
		draftService: draftService,
		maxUploadMB:  maxUploadMB,
		logger:       logger,
	}
}

// Get godoc
// @Summary Get the draft order
// @Description Returns the user's open draft order, creating an empty one on first use
// @Tags Draft order
// @Produce json
// @Success 200 {object} domain.DraftOrderDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/draft [get]
func (h *DraftOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "draft order", http.StatusOK)(h.draftService.Get(r.Context()))
}

// SetWarehouse godoc
// @Summary Select the warehouse
// @Description The warehouse is also the selling price list of the order
// @Tags Draft order
// @Accept json
// @Produce json
// @Param request body domain.SetWarehouseRequest true "Warehouse"
// @Success 200 {object} domain.DraftOrderDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/draft/warehouse [put]
func (h *DraftOrderHandler) SetWarehouse(w http.ResponseWriter, r *http.Request) {
	var req domain.SetWarehouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "draft order", http.StatusOK)(h.draftService.SetWarehouse(r.Context(), req))
}

// SetPlant godoc
// @Summary Select the plant
// @Tags Draft order
// @Accept json
// @Produce json
// @Param request body domain.SetPlantRequest true "Plant; empty clears it"
// @Success 200 {object} domain.DraftOrderDTO
// @Security BearerAuth
// @Router /orders/draft/plant [put]
func (h *DraftOrderHandler) SetPlant(w http.ResponseWriter, r *http.Request) {
	var req domain.SetPlantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "draft order", http.StatusOK)(h.draftService.SetPlant(r.Context(), req))
}

// AddItem godoc
// @Summary Add an item
// @Description Adds a line, or adds to the quantity of an item already on the draft. A zero rate is filled from the warehouse price list.
// @Tags Draft order
// @Accept json
// @Produce json
// @Param request body domain.AddDraftItemRequest true "Item"
// @Success 200 {object} domain.DraftOrderDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/draft/items [post]
func (h *DraftOrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddDraftItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "draft order", http.StatusOK)(h.draftService.AddItem(r.Context(), req))
}

// UpdateItem godoc
// @Summary Change an item's quantity
// @Tags Draft order
// @Accept json
// @Produce json
// @Param itemCode path string true "Item code"
// @Param request body domain.UpdateDraftItemRequest true "Quantity"
// @Success 200 {object} domain.DraftOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/draft/items/{itemCode} [patch]
func (h *DraftOrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateDraftItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "item", http.StatusOK)(h.draftService.UpdateItemQty(r.Context(), chi.URLParam(r, "itemCode"), req))
}

// RemoveItem godoc
// @Summary Remove an item
// @Tags Draft order
// @Produce json
// @Param itemCode path string true "Item code"
// @Success 200 {object} domain.DraftOrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/draft/items/{itemCode} [delete]
func (h *DraftOrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "item", http.StatusOK)(h.draftService.RemoveItem(r.Context(), chi.URLParam(r, "itemCode")))
}

// Clear godoc
// @Summary Remove all items
// @Description Warehouse and plant are kept
// @Tags Draft order
// @Produce json
// @Success 200 {object} domain.DraftOrderDTO
// @Security BearerAuth
// @Router /orders/draft/items [delete]
func (h *DraftOrderHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "draft order", http.StatusOK)(h.draftService.Clear(r.Context()))
}

// Submit godoc
// @Summary Place the order
// @Description Creates an ERP sales order from the draft. A payment receipt may be sent as multipart field "receipt"; it is attached to the new order.
// @Tags Draft order
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file false "Payment receipt"
// @Success 201 {object} domain.SubmitDraftResponse
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Router /orders/draft/submit [post]
func (h *DraftOrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var receipt *service.Upload
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		upload, closeFile, ok := readUpload(w, r, "receipt", h.maxUploadMB, true)
		defer closeFile()
		if !ok {
			return
		}
		receipt = upload
	}

	resp, err := h.draftService.Submit(r.Context(), receipt)
	if err != nil {
		respondServiceError(w, h.logger, err, "draft order")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Submissions godoc
// @Summary List drafts placed through the portal
// @Description Most recent submitted drafts first, each with the ERP sales order it became
// @Tags Draft order
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} domain.ListResponse{data=[]domain.DraftOrderDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/draft/submissions [get]
func (h *DraftOrderHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.draftService.Submissions(r.Context(), parseIntQuery(r, "limit", 0))
	if err != nil {
		respondServiceError(w, h.logger, err, "draft orders")
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: drafts})
}

// respond writes the draft returned by a service call, or maps its error
func (h *DraftOrderHandler) respond(w http.ResponseWriter, what string, status int) func(*domain.DraftOrderDTO, error) {
	return func(draft *domain.DraftOrderDTO, err error) {
		if err != nil {
			respondServiceError(w, h.logger, err, what)
			return
		}
		respondJSON(w, status, draft)
	}
}
