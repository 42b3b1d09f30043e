package service

import (
	"context"
	"fmt"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/mapper"
	"go.uber.org/zap"
)

var invoiceSortColumns = map[string]string{
	"creation":     "creation",
	"posting_date": "posting_date",
	"due_date":     "due_date",
	"grand_total":  "grand_total",
	"name":         "name",
}

var paymentSortColumns = map[string]string{
	"creation":     "creation",
	"posting_date": "posting_date",
	"paid_amount":  "paid_amount",
	"name":         "name",
}

// BillingService serves the customer's invoices and payments
type BillingService struct {
	erp       BillingERP
	documents *DocumentService
	erpCfg    *config.ERPConfig
	logger    *zap.Logger
}

func NewBillingService(erpClient BillingERP, documents *DocumentService, erpCfg *config.ERPConfig, logger *zap.Logger) *BillingService {
	return &BillingService{
		erp:       erpClient,
		documents: documents,
		erpCfg:    erpCfg,
		logger:    logger,
	}
}

// ListInvoices returns one page of the customer's sales invoices
func (s *BillingService) ListInvoices(ctx context.Context, params ListParams) (*domain.PageResponse, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := buildListFilter(user.CustomerName, params, invoiceSortColumns, "posting_date")
	if err != nil {
		return nil, err
	}
	invoices, err := s.erp.ListSalesInvoices(ctxFor(ctx), filter)
	if err != nil {
		return nil, translateERPError(err, "list invoices")
	}
	return pageResponse(mapper.ToInvoiceDTOs(invoices), len(invoices), filter), nil
}

func (s *BillingService) ownedInvoice(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	invoice, err := s.erp.GetSalesInvoice(ctxFor(ctx), name)
	if err != nil {
		return nil, translateERPError(err, "get invoice "+name)
	}
	if invoice.Customer != user.CustomerName {
		return nil, fmt.Errorf("invoice %s: %w", name, ErrNotFound)
	}
	return invoice, nil
}

// GetInvoice returns one of the customer's invoices
func (s *BillingService) GetInvoice(ctx context.Context, name string) (*domain.InvoiceDTO, error) {
	invoice, err := s.ownedInvoice(ctx, name)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// InvoicePDF renders one of the customer's invoices
func (s *BillingService) InvoicePDF(ctx context.Context, name string) (*PDFDocument, error) {
	invoice, err := s.ownedInvoice(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.documents.Render(ctxFor(ctx), domain.DoctypeSalesInvoice, invoice.Name, invoice.DocStatus, []string{s.erpCfg.InvoiceFormat})
}

// ListPayments returns one page of the customer's submitted payments unless
// another status is requested.
func (s *BillingService) ListPayments(ctx context.Context, params ListParams) (*domain.PageResponse, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if params.Status == "" {
		params.Status = "submitted"
	}
	filter, err := buildListFilter(user.CustomerName, params, paymentSortColumns, "posting_date")
	if err != nil {
		return nil, err
	}
	payments, err := s.erp.ListPaymentEntries(ctxFor(ctx), filter)
	if err != nil {
		return nil, translateERPError(err, "list payments")
	}
	return pageResponse(mapper.ToPaymentDTOs(payments), len(payments), filter), nil
}

func (s *BillingService) ownedPayment(ctx context.Context, name string) (*domain.PaymentEntry, error) {
	user, err := customerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	payment, err := s.erp.GetPaymentEntry(ctxFor(ctx), name)
	if err != nil {
		return nil, translateERPError(err, "get payment "+name)
	}
	if payment.PartyType != domain.DoctypeCustomer || payment.Party != user.CustomerName {
		return nil, fmt.Errorf("payment %s: %w", name, ErrNotFound)
	}
	return payment, nil
}

// GetPayment returns one of the customer's payments
func (s *BillingService) GetPayment(ctx context.Context, name string) (*domain.PaymentDTO, error) {
	payment, err := s.ownedPayment(ctx, name)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPaymentDTO(payment)
	return &dto, nil
}

// ReceiptPDF renders the receipt of one of the customer's payments
func (s *BillingService) ReceiptPDF(ctx context.Context, name string) (*PDFDocument, error) {
	payment, err := s.ownedPayment(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.documents.Render(ctxFor(ctx), domain.DoctypePaymentEntry, payment.Name, payment.DocStatus, []string{s.erpCfg.ReceiptFormat})
}
