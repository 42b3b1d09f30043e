package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/fulfillment"
	"github.com/lordsmint/portal-api/internal/mapper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var orderSortColumns = map[string]string{
	"creation":         "creation",
	"transaction_date": "transaction_date",
	"grand_total":      "grand_total",
	"name":             "name",
}

// OrderService serves the customer's sales orders and their fulfillment state
type OrderService struct {
	erp       OrderERP
	documents *DocumentService
	erpCfg    *config.ERPConfig
	loc       *time.Location
	logger    *zap.Logger
}

func NewOrderService(erpClient OrderERP, documents *DocumentService, erpCfg *config.ERPConfig, loc *time.Location, logger *zap.Logger) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		erp:       erpClient,
		documents: documents,
		erpCfg:    erpCfg,
		loc:       loc,
		logger:    logger,
	}
}

// List returns one page of the customer's orders
func (s *OrderService) List(ctx context.Context, params ListParams) (*domain.PageResponse, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := buildListFilter(user.CustomerName, params, orderSortColumns, "creation")
	if err != nil {
		return nil, err
	}

	orders, err := s.erp.ListSalesOrders(ctxFor(ctx), filter)
	if err != nil {
		return nil, translateERPError(err, "list orders")
	}
	return pageResponse(mapper.ToOrderSummaryDTOs(orders), len(orders), filter), nil
}

// getOwnedOrder loads an order and hides orders of other customers
func (s *OrderService) getOwnedOrder(ctx context.Context, name string) (*domain.SalesOrder, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	order, err := s.erp.GetSalesOrder(ctxFor(ctx), name)
	if err != nil {
		return nil, translateERPError(err, "get order "+name)
	}
	if order.Customer != user.CustomerName {
		s.logger.Warn("order requested by another customer",
			zap.String("order", name),
			zap.String("customer", user.CustomerName))
		return nil, fmt.Errorf("order %s: %w", name, ErrNotFound)
	}
	return order, nil
}

// linkedDocuments holds what the detail fan-out fetched. Each part is
// independent and left empty when its fetch fails.
type linkedDocuments struct {
	notes       []domain.DeliveryNote
	invoices    []domain.SalesInvoice
	attachments []domain.Attachment
}

func (s *OrderService) fetchLinked(ctx context.Context, name string, withAttachments bool) (*linkedDocuments, error) {
	linked := &linkedDocuments{
		notes:       []domain.DeliveryNote{},
		invoices:    []domain.SalesInvoice{},
		attachments: []domain.Attachment{},
	}
	erpCtx := ctxFor(ctx)

	g, gctx := errgroup.WithContext(erpCtx)
	g.Go(func() error {
		notes, err := s.erp.DeliveryNotesForOrder(gctx, name)
		if err != nil {
			s.logger.Warn("failed to fetch delivery notes", zap.String("order", name), zap.Error(err))
			return nil
		}
		linked.notes = fulfillment.Dedupe(notes)
		return nil
	})
	g.Go(func() error {
		invoices, err := s.erp.SalesInvoicesForOrder(gctx, name)
		if err != nil {
			s.logger.Warn("failed to fetch invoices", zap.String("order", name), zap.Error(err))
			return nil
		}
		linked.invoices = fulfillment.Dedupe(invoices)
		return nil
	})
	if withAttachments {
		g.Go(func() error {
			files, err := s.erp.Attachments(gctx, domain.DoctypeSalesOrder, name)
			if err != nil {
				s.logger.Warn("failed to fetch attachments", zap.String("order", name), zap.Error(err))
				return nil
			}
			linked.attachments = files
			return nil
		})
	}
	_ = g.Wait()

	// The client went away; nothing to render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return linked, nil
}

// Details returns an order with its delivery notes, invoices, attachments,
// resolved progress and timeline.
func (s *OrderService) Details(ctx context.Context, name string) (*domain.OrderDetailsDTO, error) {
	order, err := s.getOwnedOrder(ctx, name)
	if err != nil {
		return nil, err
	}
	linked, err := s.fetchLinked(ctx, name, true)
	if err != nil {
		return nil, err
	}

	progress := fulfillment.Resolve(order, linked.notes, linked.invoices)
	return &domain.OrderDetailsDTO{
		Order:         mapper.ToOrderDTO(order),
		DeliveryNotes: mapper.ToDeliveryNoteDTOs(progress.DeliveryNotes, s.loc),
		Invoices:      mapper.ToInvoiceLinkDTOs(progress.Invoices, s.loc),
		Attachments:   mapper.ToAttachmentDTOs(linked.attachments),
		Progress:      mapper.ToProgressDTO(progress, s.loc),
		Timeline:      mapper.ToTimelineDTOs(fulfillment.BuildTimeline(order, progress, s.loc)),
	}, nil
}

// Timeline returns only the fulfillment progress of an order
func (s *OrderService) Timeline(ctx context.Context, name string) (*domain.OrderTimelineDTO, error) {
	order, err := s.getOwnedOrder(ctx, name)
	if err != nil {
		return nil, err
	}
	linked, err := s.fetchLinked(ctx, name, false)
	if err != nil {
		return nil, err
	}

	progress := fulfillment.Resolve(order, linked.notes, linked.invoices)
	return &domain.OrderTimelineDTO{
		Name:     order.Name,
		Progress: mapper.ToProgressDTO(progress, s.loc),
		Timeline: mapper.ToTimelineDTOs(fulfillment.BuildTimeline(order, progress, s.loc)),
	}, nil
}

// DeliveryNotePDF renders a delivery note linked to one of the customer's orders
func (s *OrderService) DeliveryNotePDF(ctx context.Context, orderName, noteName string) (*PDFDocument, error) {
	if _, err := s.getOwnedOrder(ctx, orderName); err != nil {
		return nil, err
	}
	notes, err := s.erp.DeliveryNotesForOrder(ctxFor(ctx), orderName)
	if err != nil {
		return nil, translateERPError(err, "delivery notes for "+orderName)
	}
	for _, note := range fulfillment.Dedupe(notes) {
		if note.Name == noteName {
			return s.documents.Render(ctxFor(ctx), domain.DoctypeDeliveryNote, note.Name, note.DocStatus, s.erpCfg.DeliveryNoteFormats)
		}
	}
	return nil, fmt.Errorf("delivery note %s on %s: %w", noteName, orderName, ErrNotFound)
}

// InvoicePDF renders an invoice linked to one of the customer's orders
func (s *OrderService) InvoicePDF(ctx context.Context, orderName, invoiceName string) (*PDFDocument, error) {
	if _, err := s.getOwnedOrder(ctx, orderName); err != nil {
		return nil, err
	}
	invoices, err := s.erp.SalesInvoicesForOrder(ctxFor(ctx), orderName)
	if err != nil {
		return nil, translateERPError(err, "invoices for "+orderName)
	}
	for _, invoice := range fulfillment.Dedupe(invoices) {
		if invoice.Name == invoiceName {
			return s.documents.Render(ctxFor(ctx), domain.DoctypeSalesInvoice, invoice.Name, invoice.DocStatus, []string{s.erpCfg.InvoiceFormat})
		}
	}
	return nil, fmt.Errorf("invoice %s on %s: %w", invoiceName, orderName, ErrNotFound)
}
