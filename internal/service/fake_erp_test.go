package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/database"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errERPDown = &erp.Error{StatusCode: http.StatusBadGateway, Message: "bad gateway"}

func notFound(name string) error {
	return &erp.Error{StatusCode: http.StatusNotFound, ExcType: "DoesNotExistError", Message: name + " not found"}
}

// fakeERP is an in-memory ERP covering every client interface the services use
type fakeERP struct {
	mu sync.Mutex

	tokenAuth     bool
	loginResult   *erp.LoginResult
	loginErr      error
	loggedUser    string
	loggedUserErr error
	customers     map[string]string
	logouts       int
	loginSessions []*erp.Session

	orders          map[string]*domain.SalesOrder
	orderList       []domain.SalesOrder
	orderListErr    error
	orderFilters    []erp.ListFilter
	notes           map[string][]domain.DeliveryNote
	notesErr        error
	orderInvoices   map[string][]domain.SalesInvoice
	orderInvoiceErr error
	attachments     []domain.Attachment
	attachmentsErr  error
	seenSessions    []*erp.Session

	invoices       map[string]*domain.SalesInvoice
	invoiceList    []domain.SalesInvoice
	invoiceListErr error
	payments       map[string]*domain.PaymentEntry
	paymentList    []domain.PaymentEntry
	paymentListErr error
	paymentFilters []erp.ListFilter

	pdfCalls   int
	pdfFormats [][]string
	pdfErr     error

	created   []*domain.NewSalesOrder
	createErr error
	prices    []domain.ItemPrice
	priceErr  error
	uploads   []string
	// createStarted and createRelease hold CreateSalesOrder open when set
	createStarted chan struct{}
	createRelease chan struct{}

	warehouses     []domain.Warehouse
	warehouseCalls int
	plants         []domain.Plant
	items          []domain.Item
	itemsErr       error
	stock          []domain.StockBalance

	complaints []domain.Complaint
	feedback   []domain.Feedback
	returns    []domain.ReturnRequest
	news       []domain.NewsItem
}

func newFakeERP() *fakeERP {
	return &fakeERP{
		customers:     map[string]string{},
		orders:        map[string]*domain.SalesOrder{},
		notes:         map[string][]domain.DeliveryNote{},
		orderInvoices: map[string][]domain.SalesInvoice{},
		invoices:      map[string]*domain.SalesInvoice{},
		payments:      map[string]*domain.PaymentEntry{},
	}
}

func (f *fakeERP) record(ctx context.Context) {
	s, _ := erp.SessionFromContext(ctx)
	f.mu.Lock()
	f.seenSessions = append(f.seenSessions, s)
	f.mu.Unlock()
}

// Auth

func (f *fakeERP) TokenAuth() bool { return f.tokenAuth }

func (f *fakeERP) Login(_ context.Context, _, _ string) (*erp.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeERP) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	s, _ := erp.SessionFromContext(ctx)
	f.loginSessions = append(f.loginSessions, s)
	return nil
}

func (f *fakeERP) LoggedUser(ctx context.Context) (string, error) {
	if _, ok := erp.SessionFromContext(ctx); !ok {
		return "", errors.New("logged user requested without session")
	}
	return f.loggedUser, f.loggedUserErr
}

func (f *fakeERP) CustomerForUser(_ context.Context, username string) (string, error) {
	return f.customers[username], nil
}

// Orders

func (f *fakeERP) ListSalesOrders(ctx context.Context, filter erp.ListFilter) ([]domain.SalesOrder, error) {
	f.record(ctx)
	f.mu.Lock()
	f.orderFilters = append(f.orderFilters, filter)
	f.mu.Unlock()
	return f.orderList, f.orderListErr
}

func (f *fakeERP) GetSalesOrder(ctx context.Context, name string) (*domain.SalesOrder, error) {
	f.record(ctx)
	o, ok := f.orders[name]
	if !ok {
		return nil, notFound(name)
	}
	copied := *o
	return &copied, nil
}

func (f *fakeERP) DeliveryNotesForOrder(ctx context.Context, salesOrder string) ([]domain.DeliveryNote, error) {
	f.record(ctx)
	return f.notes[salesOrder], f.notesErr
}

func (f *fakeERP) SalesInvoicesForOrder(ctx context.Context, salesOrder string) ([]domain.SalesInvoice, error) {
	f.record(ctx)
	return f.orderInvoices[salesOrder], f.orderInvoiceErr
}

func (f *fakeERP) Attachments(ctx context.Context, _, _ string) ([]domain.Attachment, error) {
	f.record(ctx)
	return f.attachments, f.attachmentsErr
}

// Billing

func (f *fakeERP) ListSalesInvoices(_ context.Context, _ erp.ListFilter) ([]domain.SalesInvoice, error) {
	return f.invoiceList, f.invoiceListErr
}

func (f *fakeERP) GetSalesInvoice(_ context.Context, name string) (*domain.SalesInvoice, error) {
	inv, ok := f.invoices[name]
	if !ok {
		return nil, notFound(name)
	}
	return inv, nil
}

func (f *fakeERP) ListPaymentEntries(_ context.Context, filter erp.ListFilter) ([]domain.PaymentEntry, error) {
	f.mu.Lock()
	f.paymentFilters = append(f.paymentFilters, filter)
	f.mu.Unlock()
	return f.paymentList, f.paymentListErr
}

func (f *fakeERP) GetPaymentEntry(_ context.Context, name string) (*domain.PaymentEntry, error) {
	p, ok := f.payments[name]
	if !ok {
		return nil, notFound(name)
	}
	return p, nil
}

// Print

func (f *fakeERP) DownloadPDFWithFallback(_ context.Context, _, name string, formats []string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdfCalls++
	f.pdfFormats = append(f.pdfFormats, formats)
	if f.pdfErr != nil {
		return nil, "", f.pdfErr
	}
	return []byte("%PDF-1.4 " + name), formats[len(formats)-1], nil
}

// Drafts

func (f *fakeERP) CreateSalesOrder(ctx context.Context, order *domain.NewSalesOrder) (*domain.SalesOrder, error) {
	if f.createStarted != nil {
		f.createStarted <- struct{}{}
	}
	if f.createRelease != nil {
		<-f.createRelease
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, order)
	return &domain.SalesOrder{
		Name:      "SAL-ORD-0001",
		Customer:  order.Customer,
		DocStatus: domain.DocStatusDraft,
		Currency:  order.Currency,
	}, nil
}

func (f *fakeERP) ItemPrice(_ context.Context, priceList, itemCode string) (*domain.ItemPrice, error) {
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	for i := range f.prices {
		if f.prices[i].PriceList == priceList && f.prices[i].ItemCode == itemCode {
			return &f.prices[i], nil
		}
	}
	return nil, nil
}

func (f *fakeERP) UploadFile(_ context.Context, filename string, content io.Reader, doctype, docname string) (*domain.Attachment, error) {
	if _, err := io.ReadAll(content); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, filename)
	f.mu.Unlock()
	return &domain.Attachment{
		Name:              "FILE-" + filename,
		FileName:          filename,
		FileURL:           "/files/" + filename,
		AttachedToDoctype: doctype,
		AttachedToName:    docname,
	}, nil
}

// Catalog

func (f *fakeERP) ListWarehouses(_ context.Context, _ string, _, _ int) ([]domain.Warehouse, error) {
	f.mu.Lock()
	f.warehouseCalls++
	f.mu.Unlock()
	return f.warehouses, nil
}

func (f *fakeERP) ListPlants(context.Context) ([]domain.Plant, error) { return f.plants, nil }

func (f *fakeERP) ListItems(_ context.Context, _, _ string, _, _ int) ([]domain.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeERP) GetItem(_ context.Context, code string) (*domain.Item, error) {
	for i := range f.items {
		if f.items[i].ItemCode == code {
			return &f.items[i], nil
		}
	}
	return nil, notFound(code)
}

func (f *fakeERP) ListPriceLists(context.Context) ([]domain.PriceList, error) { return nil, nil }

func (f *fakeERP) ListItemPrices(_ context.Context, filter erp.ItemPriceFilter) ([]domain.ItemPrice, error) {
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	if filter.PriceList == "" {
		return f.prices, nil
	}
	var out []domain.ItemPrice
	for _, p := range f.prices {
		if p.PriceList == filter.PriceList {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeERP) StockBalance(context.Context, string, string) ([]domain.StockBalance, error) {
	return f.stock, nil
}

func (f *fakeERP) ListItemGroups(context.Context) ([]domain.ItemGroup, error) { return nil, nil }

func (f *fakeERP) ListCompanies(context.Context) ([]domain.Company, error) { return nil, nil }

// Support

func (f *fakeERP) CreateComplaint(_ context.Context, c domain.Complaint) (string, error) {
	f.complaints = append(f.complaints, c)
	return "COMP-0001", nil
}

func (f *fakeERP) CreateFeedback(_ context.Context, fb domain.Feedback) (string, error) {
	f.feedback = append(f.feedback, fb)
	return "FB-0001", nil
}

func (f *fakeERP) CreateReturnRequest(_ context.Context, r domain.ReturnRequest) (string, error) {
	f.returns = append(f.returns, r)
	return "RET-0001", nil
}

func (f *fakeERP) ListNews(_ context.Context, limit int) ([]domain.NewsItem, error) {
	if len(f.news) > limit {
		return f.news[:limit], nil
	}
	return f.news, nil
}

// Helpers shared by the service tests

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func customerCtx(customer string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		SessionID:    uuid.New(),
		Username:     "buyer@" + customer + ".test",
		CustomerName: customer,
		AuthMode:     domain.AuthModeToken,
		ExpiresAt:    time.Now().Add(time.Hour),
	})
}

func sessionModeCtx(customer, sid string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		SessionID:    uuid.New(),
		Username:     "buyer@" + customer + ".test",
		CustomerName: customer,
		AuthMode:     domain.AuthModeSession,
		ExpiresAt:    time.Now().Add(time.Hour),
		ERPSession:   &erp.Session{SID: sid, CSRFToken: "csrf"},
	})
}
