package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/mapper"
	"github.com/lordsmint/portal-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultCurrency         = "NGN"
	defaultSubmissionsLimit = 10
)

// Upload is a file sent along with a request
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// DraftOrderService is the server-side order builder. Each user has at most
// one open draft; submitting it creates an ERP sales order.
type DraftOrderService struct {
	repo      *repository.DraftOrderRepository
	erp       DraftERP
	erpCfg    *config.ERPConfig
	maxUpload int64
	loc       *time.Location
	logger    *zap.Logger
	submits   singleflight.Group
	now       func() time.Time
}

func NewDraftOrderService(repo *repository.DraftOrderRepository, erpClient DraftERP, erpCfg *config.ERPConfig, storageCfg *config.StorageConfig, loc *time.Location, logger *zap.Logger) *DraftOrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &DraftOrderService{
		repo:      repo,
		erp:       erpClient,
		erpCfg:    erpCfg,
		maxUpload: storageCfg.MaxUploadSizeMB << 20,
		loc:       loc,
		logger:    logger,
		now:       utcNow,
	}
}

// openDraft returns the user's open draft, creating it on first use
func (s *DraftOrderService) openDraft(ctx context.Context, user *auth.UserContext) (*domain.DraftOrder, error) {
	for attempt := 0; ; attempt++ {
		draft, err := s.repo.GetOpenByUsername(ctx, user.Username)
		if err == nil {
			draft.CustomerName = user.CustomerName
			return draft, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load draft order: %w", err)
		}

		draft = &domain.DraftOrder{
			Username:     user.Username,
			CustomerName: user.CustomerName,
			Status:       domain.DraftOrderStatusOpen,
			Items:        []domain.DraftOrderItem{},
		}
		err = s.repo.Create(ctx, draft)
		if err == nil {
			return draft, nil
		}
		// Another request created the draft first; use that one
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		return nil, fmt.Errorf("failed to create draft order: %w", err)
	}
}

// update applies fn to the user's open draft while holding its row lock
func (s *DraftOrderService) update(ctx context.Context, user *auth.UserContext, fn func(*domain.DraftOrder) error) (*domain.DraftOrder, error) {
	for attempt := 0; attempt < 2; attempt++ {
		if _, err := s.openDraft(ctx, user); err != nil {
			return nil, err
		}
		var fnErr error
		draft, err := s.repo.UpdateOpen(ctx, user.Username, func(d *domain.DraftOrder) error {
			d.CustomerName = user.CustomerName
			fnErr = fn(d)
			return fnErr
		})
		if fnErr != nil {
			return nil, fnErr
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Submitted between open and lock; the next draft takes the edit
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save draft order: %w", err)
		}
		return draft, nil
	}
	return nil, fmt.Errorf("%w: draft order changed, please retry", ErrConflict)
}

// mutate applies fn to the caller's open draft and returns the saved result
func (s *DraftOrderService) mutate(ctx context.Context, fn func(*domain.DraftOrder) error) (*domain.DraftOrderDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	draft, err := s.update(ctx, user, fn)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDraftOrderDTO(draft)
	return &dto, nil
}

// Get returns the open draft, creating an empty one on first use
func (s *DraftOrderService) Get(ctx context.Context) (*domain.DraftOrderDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	draft, err := s.openDraft(ctx, user)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDraftOrderDTO(draft)
	return &dto, nil
}

// SetWarehouse selects the warehouse, which is also the order's price list
func (s *DraftOrderService) SetWarehouse(ctx context.Context, req domain.SetWarehouseRequest) (*domain.DraftOrderDTO, error) {
	warehouse := strings.TrimSpace(req.Warehouse)
	if warehouse == "" {
		return nil, fmt.Errorf("%w: warehouse is required", ErrInvalidInput)
	}
	return s.mutate(ctx, func(d *domain.DraftOrder) error {
		d.Warehouse = warehouse
		return nil
	})
}

// SetPlant selects the plant; an empty value clears it
func (s *DraftOrderService) SetPlant(ctx context.Context, req domain.SetPlantRequest) (*domain.DraftOrderDTO, error) {
	return s.mutate(ctx, func(d *domain.DraftOrder) error {
		d.Plant = strings.TrimSpace(req.Plant)
		return nil
	})
}

// AddItem adds a line or, when the item is already on the draft, adds to its
// quantity at the existing rate. A zero rate is filled from the warehouse
// price list when one is selected.
func (s *DraftOrderService) AddItem(ctx context.Context, req domain.AddDraftItemRequest) (*domain.DraftOrderDTO, error) {
	code := strings.TrimSpace(req.ItemCode)
	if code == "" {
		return nil, fmt.Errorf("%w: itemCode is required", ErrInvalidInput)
	}
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("%w: qty must be greater than zero", ErrInvalidInput)
	}
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate cannot be negative", ErrInvalidInput)
	}

	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// The ERP price lookup runs before the draft row is locked
	var price *domain.ItemPrice
	pricedFrom := ""
	if req.Rate.IsZero() {
		current, err := s.openDraft(ctx, user)
		if err != nil {
			return nil, err
		}
		if current.Warehouse != "" && current.FindItem(code) < 0 {
			pricedFrom = current.Warehouse
			price = s.lookupPrice(ctx, pricedFrom, code)
		}
	}

	draft, err := s.update(ctx, user, func(d *domain.DraftOrder) error {
		if i := d.FindItem(code); i >= 0 {
			d.Items[i].Qty = d.Items[i].Qty.Add(req.Qty)
			d.Items[i].Recalculate()
			return nil
		}

		item := domain.DraftOrderItem{
			DraftOrderID: d.ID,
			ItemCode:     code,
			ItemName:     strings.TrimSpace(req.ItemName),
			Qty:          req.Qty,
			Rate:         req.Rate,
		}
		if item.Rate.IsZero() && d.Warehouse != "" {
			if d.Warehouse != pricedFrom {
				return fmt.Errorf("%w: warehouse changed while adding %s, please retry", ErrConflict, code)
			}
			applyPrice(&item, price)
		}
		item.Recalculate()
		d.Items = append(d.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDraftOrderDTO(draft)
	return &dto, nil
}

func (s *DraftOrderService) lookupPrice(ctx context.Context, priceList, itemCode string) *domain.ItemPrice {
	price, err := s.erp.ItemPrice(ctxFor(ctx), priceList, itemCode)
	if err != nil {
		s.logger.Warn("failed to look up item price",
			zap.String("price_list", priceList),
			zap.String("item_code", itemCode),
			zap.Error(err))
		return nil
	}
	return price
}

func applyPrice(item *domain.DraftOrderItem, price *domain.ItemPrice) {
	if price == nil {
		return
	}
	item.Rate = price.PriceListRate
	if item.ItemName == "" {
		item.ItemName = price.ItemName
	}
}

// UpdateItemQty sets the quantity of a line
func (s *DraftOrderService) UpdateItemQty(ctx context.Context, itemCode string, req domain.UpdateDraftItemRequest) (*domain.DraftOrderDTO, error) {
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("%w: qty must be greater than zero", ErrInvalidInput)
	}
	return s.mutate(ctx, func(d *domain.DraftOrder) error {
		i := d.FindItem(itemCode)
		if i < 0 {
			return fmt.Errorf("item %s: %w", itemCode, ErrNotFound)
		}
		d.Items[i].Qty = req.Qty
		d.Items[i].Recalculate()
		return nil
	})
}

// RemoveItem drops a line from the draft
func (s *DraftOrderService) RemoveItem(ctx context.Context, itemCode string) (*domain.DraftOrderDTO, error) {
	return s.mutate(ctx, func(d *domain.DraftOrder) error {
		i := d.FindItem(itemCode)
		if i < 0 {
			return fmt.Errorf("item %s: %w", itemCode, ErrNotFound)
		}
		d.Items = append(d.Items[:i], d.Items[i+1:]...)
		return nil
	})
}

// Clear removes every line but keeps warehouse and plant
func (s *DraftOrderService) Clear(ctx context.Context) (*domain.DraftOrderDTO, error) {
	return s.mutate(ctx, func(d *domain.DraftOrder) error {
		d.Items = []domain.DraftOrderItem{}
		return nil
	})
}

type submitResult struct {
	resp    *domain.SubmitDraftResponse
	receipt *Upload
}

// Submit places the draft as an ERP sales order. Concurrent submits of the
// same user's draft share one ERP call; a caller whose receipt was not the one
// attached gets ErrConflict.
func (s *DraftOrderService) Submit(ctx context.Context, receipt *Upload) (*domain.SubmitDraftResponse, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if receipt != nil && s.maxUpload > 0 && receipt.Size > s.maxUpload {
		return nil, fmt.Errorf("%w: receipt exceeds %d MB", ErrInvalidInput, s.maxUpload>>20)
	}

	v, err, shared := s.submits.Do(user.Username, func() (interface{}, error) {
		// Shared by every collapsed caller, so no single caller may cancel it
		resp, err := s.submit(context.WithoutCancel(ctx), user, receipt)
		return &submitResult{resp: resp, receipt: receipt}, err
	})
	if err != nil {
		return nil, err
	}
	result := v.(*submitResult)
	if shared {
		s.logger.Info("collapsed concurrent draft submit", zap.String("username", user.Username))
		if receipt != nil && result.receipt != receipt {
			return nil, fmt.Errorf("%w: draft was already submitted as %s without this receipt", ErrConflict, result.resp.SalesOrder)
		}
	}
	return result.resp, nil
}

func (s *DraftOrderService) submit(ctx context.Context, user *auth.UserContext, receipt *Upload) (*domain.SubmitDraftResponse, error) {
	var created *domain.SalesOrder
	draft, err := s.update(ctx, user, func(d *domain.DraftOrder) error {
		if d.CustomerName == "" {
			return ErrNoCustomer
		}
		if d.Warehouse == "" {
			return ErrNoWarehouse
		}
		if len(d.Items) == 0 {
			return ErrDraftEmpty
		}

		order, err := s.erp.CreateSalesOrder(ctxFor(ctx), s.buildSalesOrder(d))
		if err != nil {
			s.logger.Error("failed to create sales order",
				zap.String("username", user.Username),
				zap.String("customer", d.CustomerName),
				zap.Error(err))
			return translateERPError(err, "create sales order")
		}
		created = order

		submittedAt := s.now()
		d.Status = domain.DraftOrderStatusSubmitted
		d.SubmittedOrderName = created.Name
		d.SubmittedAt = &submittedAt
		return nil
	})
	if err != nil {
		if created == nil {
			return nil, err
		}
		// The ERP order exists; report it even though the draft stays open
		s.logger.Error("failed to mark draft submitted",
			zap.String("username", user.Username),
			zap.String("sales_order", created.Name),
			zap.Error(err))
		draft, err = s.openDraft(ctx, user)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("sales order created",
		zap.String("sales_order", created.Name),
		zap.String("customer", draft.CustomerName),
		zap.Int("items", len(draft.Items)))

	resp := &domain.SubmitDraftResponse{
		SalesOrder: created.Name,
		Order:      mapper.ToOrderSummaryDTO(created),
		Draft:      mapper.ToDraftOrderDTO(draft),
	}
	if receipt != nil {
		file, err := s.erp.UploadFile(ctxFor(ctx), receipt.Filename, receipt.Content, domain.DoctypeSalesOrder, created.Name)
		if err != nil {
			s.logger.Warn("failed to attach payment receipt", zap.String("sales_order", created.Name), zap.Error(err))
		} else {
			dto := mapper.ToAttachmentDTO(file)
			resp.Receipt = &dto
		}
	}
	return resp, nil
}

// Submissions lists the caller's most recent drafts placed through the portal
func (s *DraftOrderService) Submissions(ctx context.Context, limit int) ([]domain.DraftOrderDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	drafts, err := s.repo.ListSubmittedByUsername(ctx, user.Username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted drafts: %w", err)
	}
	out := make([]domain.DraftOrderDTO, len(drafts))
	for i := range drafts {
		out[i] = mapper.ToDraftOrderDTO(&drafts[i])
	}
	return out, nil
}

func (s *DraftOrderService) buildSalesOrder(draft *domain.DraftOrder) *domain.NewSalesOrder {
	today := s.now().In(s.loc)
	lead := s.erpCfg.DeliveryLeadDays
	if lead <= 0 {
		lead = 7
	}
	currency := s.erpCfg.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	lines := make([]domain.NewSalesOrderLine, len(draft.Items))
	for i, item := range draft.Items {
		lines[i] = domain.NewSalesOrderLine{ItemCode: item.ItemCode, Qty: item.Qty, Rate: item.Rate}
	}
	return &domain.NewSalesOrder{
		Doctype:          domain.DoctypeSalesOrder,
		Customer:         draft.CustomerName,
		TransactionDate:  today.Format(dateLayout),
		DeliveryDate:     today.AddDate(0, 0, lead).Format(dateLayout),
		SetWarehouse:     draft.Warehouse,
		CustomPlant:      draft.Plant,
		SellingPriceList: draft.Warehouse,
		Currency:         currency,
		Items:            lines,
	}
}

// PurgeStale removes open drafts untouched for longer than maxAge
func (s *DraftOrderService) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.DeleteStaleOpen(ctx, s.now().Add(-maxAge))
}
