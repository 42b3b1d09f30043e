package service

import (
	"context"
	"sync"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
	"github.com/lordsmint/portal-api/internal/mapper"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardWindow       = 100
	dashboardRecentOrders = 5
)

// DashboardERP is what the dashboard summary reads
type DashboardERP interface {
	ListSalesOrders(ctx context.Context, f erp.ListFilter) ([]domain.SalesOrder, error)
	ListSalesInvoices(ctx context.Context, f erp.ListFilter) ([]domain.SalesInvoice, error)
	ListPaymentEntries(ctx context.Context, f erp.ListFilter) ([]domain.PaymentEntry, error)
}

type DashboardService struct {
	erp    DashboardERP
	logger *zap.Logger
}

func NewDashboardService(erpClient DashboardERP, logger *zap.Logger) *DashboardService {
	return &DashboardService{erp: erpClient, logger: logger}
}

// Summary builds the customer's home page figures. Orders, invoices and
// payments are fetched concurrently; a failed part is reported in
// PartialFailures and left empty.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardDTO, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	customer := user.CustomerName

	dto := &domain.DashboardDTO{
		Customer:           customer,
		RecentOrders:       []domain.OrderSummaryDTO{},
		OutstandingTotal:   decimal.Zero,
		OutstandingDisplay: mapper.FormatNaira(decimal.Zero),
	}
	var mu sync.Mutex
	fail := func(part string, err error) {
		s.logger.Warn("dashboard part failed", zap.String("part", part), zap.String("customer", customer), zap.Error(err))
		mu.Lock()
		dto.PartialFailures = append(dto.PartialFailures, part)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctxFor(ctx))
	g.Go(func() error {
		orders, err := s.erp.ListSalesOrders(gctx, erp.ListFilter{
			Customer:    customer,
			DocStatuses: []domain.DocStatus{domain.DocStatusDraft, domain.DocStatusSubmitted},
			PageSize:    dashboardWindow,
		})
		if err != nil {
			fail("orders", err)
			return nil
		}
		for _, o := range orders {
			switch o.DocStatus {
			case domain.DocStatusDraft:
				dto.DraftOrders++
			case domain.DocStatusSubmitted:
				dto.SubmittedOrders++
			}
		}
		if len(orders) > dashboardRecentOrders {
			orders = orders[:dashboardRecentOrders]
		}
		dto.RecentOrders = mapper.ToOrderSummaryDTOs(orders)
		return nil
	})
	g.Go(func() error {
		invoices, err := s.erp.ListSalesInvoices(gctx, erp.ListFilter{
			Customer:    customer,
			DocStatuses: []domain.DocStatus{domain.DocStatusSubmitted},
			OrderBy:     "posting_date desc",
			PageSize:    dashboardWindow,
		})
		if err != nil {
			fail("invoices", err)
			return nil
		}
		total := decimal.Zero
		unpaid := 0
		for _, inv := range invoices {
			if inv.OutstandingAmount.IsPositive() {
				total = total.Add(inv.OutstandingAmount)
				unpaid++
			}
		}
		dto.OutstandingTotal = total
		dto.OutstandingDisplay = mapper.FormatNaira(total)
		dto.UnpaidInvoices = unpaid
		return nil
	})
	g.Go(func() error {
		payments, err := s.erp.ListPaymentEntries(gctx, erp.ListFilter{
			Customer: customer,
			OrderBy:  "posting_date desc",
			PageSize: 1,
		})
		if err != nil {
			fail("payments", err)
			return nil
		}
		if len(payments) > 0 {
			p := mapper.ToPaymentDTO(&payments[0])
			dto.LastPayment = &p
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dto, nil
}
