package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
)

// AuthERP is the part of the ERP client used to log users in
type AuthERP interface {
	TokenAuth() bool
	Login(ctx context.Context, username, password string) (*erp.LoginResult, error)
	Logout(ctx context.Context) error
	LoggedUser(ctx context.Context) (string, error)
	CustomerForUser(ctx context.Context, username string) (string, error)
}

// OrderERP reads a customer's orders and the documents linked to them
type OrderERP interface {
	ListSalesOrders(ctx context.Context, f erp.ListFilter) ([]domain.SalesOrder, error)
	GetSalesOrder(ctx context.Context, name string) (*domain.SalesOrder, error)
	DeliveryNotesForOrder(ctx context.Context, salesOrder string) ([]domain.DeliveryNote, error)
	SalesInvoicesForOrder(ctx context.Context, salesOrder string) ([]domain.SalesInvoice, error)
	Attachments(ctx context.Context, doctype, name string) ([]domain.Attachment, error)
}

// BillingERP reads invoices and payments
type BillingERP interface {
	ListSalesInvoices(ctx context.Context, f erp.ListFilter) ([]domain.SalesInvoice, error)
	GetSalesInvoice(ctx context.Context, name string) (*domain.SalesInvoice, error)
	ListPaymentEntries(ctx context.Context, f erp.ListFilter) ([]domain.PaymentEntry, error)
	GetPaymentEntry(ctx context.Context, name string) (*domain.PaymentEntry, error)
}

// PrintERP renders documents as PDF
type PrintERP interface {
	DownloadPDFWithFallback(ctx context.Context, doctype, name string, formats []string) ([]byte, string, error)
}

// DraftERP places orders built in the portal
type DraftERP interface {
	CreateSalesOrder(ctx context.Context, order *domain.NewSalesOrder) (*domain.SalesOrder, error)
	ItemPrice(ctx context.Context, priceList, itemCode string) (*domain.ItemPrice, error)
	UploadFile(ctx context.Context, filename string, content io.Reader, doctype, docname string) (*domain.Attachment, error)
}

// CatalogERP reads master data
type CatalogERP interface {
	ListWarehouses(ctx context.Context, search string, page, pageSize int) ([]domain.Warehouse, error)
	ListPlants(ctx context.Context) ([]domain.Plant, error)
	ListItems(ctx context.Context, search, group string, page, pageSize int) ([]domain.Item, error)
	GetItem(ctx context.Context, code string) (*domain.Item, error)
	ListPriceLists(ctx context.Context) ([]domain.PriceList, error)
	ListItemPrices(ctx context.Context, f erp.ItemPriceFilter) ([]domain.ItemPrice, error)
	StockBalance(ctx context.Context, itemCode, warehouse string) ([]domain.StockBalance, error)
	ListItemGroups(ctx context.Context) ([]domain.ItemGroup, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// SupportERP files customer support documents
type SupportERP interface {
	CreateComplaint(ctx context.Context, complaint domain.Complaint) (string, error)
	CreateFeedback(ctx context.Context, feedback domain.Feedback) (string, error)
	CreateReturnRequest(ctx context.Context, req domain.ReturnRequest) (string, error)
	UploadFile(ctx context.Context, filename string, content io.Reader, doctype, docname string) (*domain.Attachment, error)
	ListNews(ctx context.Context, limit int) ([]domain.NewsItem, error)
}

// ctxFor attaches the caller's ERP credentials to ctx
func ctxFor(ctx context.Context) context.Context {
	return auth.ERPContext(ctx)
}

// translateERPError maps ERP failures onto service errors
func translateERPError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case erp.IsNotFound(err):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case erp.IsUnauthorized(err):
		return fmt.Errorf("%s: %w", what, ErrUnauthorized)
	case erp.IsForbidden(err):
		return fmt.Errorf("%s: %w", what, ErrForbidden)
	}
	return fmt.Errorf("%s: %w: %v", what, ErrUpstream, err)
}
