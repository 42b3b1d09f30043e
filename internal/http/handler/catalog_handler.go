package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/domain"
	"go.uber.org/zap"
)

// CatalogService serves master data and prices
type CatalogService interface {
	Warehouses(ctx context.Context, search string, page, pageSize int) (*domain.PageResponse, error)
	Plants(ctx context.Context) ([]domain.Plant, error)
	ItemGroups(ctx context.Context) ([]domain.ItemGroup, error)
	Companies(ctx context.Context) ([]domain.Company, error)
	PriceLists(ctx context.Context) ([]domain.PriceList, error)
	Items(ctx context.Context, search, group string, page, pageSize int) (*domain.PageResponse, error)
	GetItem(ctx context.Context, code string) (*domain.Item, error)
	PriceList(ctx context.Context, warehouse, search string, page, pageSize int) (*domain.PageResponse, error)
	SearchItems(ctx context.Context, query, priceList string, page, pageSize int) (*domain.PageResponse, error)
	StockBalance(ctx context.Context, itemCode, warehouse string) ([]domain.StockBalance, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

// Warehouses godoc
// @Summary List warehouses
// @Tags Catalog
// @Produce json
// @Param search query string false "Name contains"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Success 200 {object} domain.PageResponse{data=[]domain.Warehouse}
// @Security BearerAuth
// @Router /catalog/warehouses [get]
func (h *CatalogHandler) Warehouses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalogService.Warehouses(r.Context(), r.URL.Query().Get("search"), parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "warehouses")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Plants godoc
// @Summary List plants
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ListResponse{data=[]domain.Plant}
// @Security BearerAuth
// @Router /catalog/plants [get]
func (h *CatalogHandler) Plants(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.Plants(r.Context())
	h.respondList(w, "plants", rows, err)
}

// ItemGroups godoc
// @Summary List item groups
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ListResponse{data=[]domain.ItemGroup}
// @Security BearerAuth
// @Router /catalog/item-groups [get]
func (h *CatalogHandler) ItemGroups(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.ItemGroups(r.Context())
	h.respondList(w, "item groups", rows, err)
}

// Companies godoc
// @Summary List companies
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ListResponse{data=[]domain.Company}
// @Security BearerAuth
// @Router /catalog/companies [get]
func (h *CatalogHandler) Companies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.Companies(r.Context())
	h.respondList(w, "companies", rows, err)
}

// PriceLists godoc
// @Summary List enabled price lists
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ListResponse{data=[]domain.PriceList}
// @Security BearerAuth
// @Router /catalog/price-lists [get]
func (h *CatalogHandler) PriceLists(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.PriceLists(r.Context())
	h.respondList(w, "price lists", rows, err)
}

// Items godoc
// @Summary List sales items
// @Tags Catalog
// @Produce json
// @Param search query string false "Name contains"
// @Param group query string false "Item group"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Success 200 {object} domain.PageResponse{data=[]domain.Item}
// @Security BearerAuth
// @Router /catalog/items [get]
func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.catalogService.Items(r.Context(), q.Get("search"), q.Get("group"), parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "items")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetItem godoc
// @Summary Get an item
// @Tags Catalog
// @Produce json
// @Param code path string true "Item code"
// @Success 200 {object} domain.Item
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /catalog/items/{code} [get]
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalogService.GetItem(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondServiceError(w, h.logger, err, "item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// SearchItems godoc
// @Summary Search priced items
// @Description Items matching the query, priced from the given price list, else from any price list, else zero
// @Tags Catalog
// @Produce json
// @Param q query string false "Name contains"
// @Param priceList query string false "Preferred price list (warehouse)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Success 200 {object} domain.PageResponse{data=[]domain.PricedItem}
// @Security BearerAuth
// @Router /catalog/items/search [get]
func (h *CatalogHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.catalogService.SearchItems(r.Context(), q.Get("q"), q.Get("priceList"), parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "items")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// PriceList godoc
// @Summary Price list of a warehouse
// @Tags Catalog
// @Produce json
// @Param warehouse path string true "Warehouse (price list) name"
// @Param search query string false "Item name contains"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Success 200 {object} domain.PageResponse{data=[]domain.PricedItem}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /catalog/warehouses/{warehouse}/prices [get]
func (h *CatalogHandler) PriceList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalogService.PriceList(r.Context(), chi.URLParam(r, "warehouse"), r.URL.Query().Get("search"), parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "price list")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// StockBalance godoc
// @Summary Stock of an item
// @Tags Catalog
// @Produce json
// @Param code path string true "Item code"
// @Param warehouse query string false "Limit to one warehouse"
// @Success 200 {object} domain.ListResponse{data=[]domain.StockBalance}
// @Security BearerAuth
// @Router /catalog/items/{code}/stock [get]
func (h *CatalogHandler) StockBalance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.StockBalance(r.Context(), chi.URLParam(r, "code"), r.URL.Query().Get("warehouse"))
	h.respondList(w, "stock", rows, err)
}

func (h *CatalogHandler) respondList(w http.ResponseWriter, what string, rows interface{}, err error) {
	if err != nil {
		respondServiceError(w, h.logger, err, what)
		return
	}
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: rows})
}
