package erp

import (
	"context"
	"fmt"

	"github.com/lordsmint/portal-api/internal/domain"
)

var (
	salesOrderListFields = []string{"name", "transaction_date", "creation", "status", "docstatus", "grand_total", "currency"}
	linkedDocFields      = []string{"name", "posting_date", "posting_time", "creation", "docstatus", "status"}
	invoiceListFields    = []string{"name", "posting_date", "due_date", "grand_total", "outstanding_amount", "currency", "docstatus", "status"}
	paymentListFields    = []string{"name", "posting_date", "paid_amount", "mode_of_payment", "status", "reference_no", "docstatus", "party", "party_type"}
	attachmentFields     = []string{"name", "file_name", "file_url", "attached_to_doctype", "attached_to_name"}
	warehouseFields      = []string{"name", "warehouse_name", "warehouse_type", "company", "disabled", "parent_warehouse", "custom_plant"}
	itemFields           = []string{"item_code", "item_name", "description", "item_group", "is_sales_item", "is_stock_item", "stock_uom", "image"}
	itemPriceFields      = []string{"name", "item_code", "item_name", "price_list", "price_list_rate", "currency", "valid_from", "valid_upto"}
	binFields            = []string{"item_code", "warehouse", "actual_qty", "reserved_qty", "projected_qty"}
)

// ListFilter narrows a customer's transaction list
type ListFilter struct {
	Customer    string
	DocStatuses []domain.DocStatus
	// FromDate and ToDate are inclusive YYYY-MM-DD bounds on the document date
	FromDate string
	ToDate   string
	Search   string
	// OrderBy is a complete order_by clause, e.g. "creation desc"
	OrderBy  string
	Page     int
	PageSize int
}

func (f ListFilter) filters(customerField, dateField string) []Filter {
	filters := []Filter{Eq(customerField, f.Customer)}
	if len(f.DocStatuses) > 0 {
		statuses := make([]int, 0, len(f.DocStatuses))
		for _, s := range f.DocStatuses {
			statuses = append(statuses, int(s))
		}
		filters = append(filters, In("docstatus", statuses))
	}
	if f.FromDate != "" {
		filters = append(filters, Gte(dateField, f.FromDate))
	}
	if f.ToDate != "" {
		filters = append(filters, Lte(dateField, f.ToDate))
	}
	if f.Search != "" {
		filters = append(filters, Like("name", f.Search))
	}
	return filters
}

func (f ListFilter) orderBy() string {
	if f.OrderBy == "" {
		return "creation desc"
	}
	return f.OrderBy
}

// ListSalesOrders returns one page of a customer's sales orders
func (c *Client) ListSalesOrders(ctx context.Context, f ListFilter) ([]domain.SalesOrder, error) {
	var orders []domain.SalesOrder
	err := c.ListDocs(ctx, domain.DoctypeSalesOrder, ListQuery{
		Fields:     salesOrderListFields,
		Filters:    f.filters("customer", "transaction_date"),
		OrderBy:    f.orderBy(),
		Start:      Offset(f.Page, f.PageSize),
		PageLength: f.PageSize,
	}, &orders)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	return orders, nil
}

// GetSalesOrder loads an order with its items
func (c *Client) GetSalesOrder(ctx context.Context, name string) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	if err := c.GetDoc(ctx, domain.DoctypeSalesOrder, name, &order); err != nil {
		return nil, fmt.Errorf("get sales order %s: %w", name, err)
	}
	return &order, nil
}

// DeliveryNotesForOrder lists delivery notes with an item against the order
func (c *Client) DeliveryNotesForOrder(ctx context.Context, salesOrder string) ([]domain.DeliveryNote, error) {
	var notes []domain.DeliveryNote
	err := c.ListDocs(ctx, domain.DoctypeDeliveryNote, ListQuery{
		Fields:     linkedDocFields,
		Filters:    []Filter{ChildEq(domain.DoctypeDeliveryNoteItem, "against_sales_order", salesOrder)},
		PageLength: AllRows,
	}, &notes)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes for %s: %w", salesOrder, err)
	}
	return notes, nil
}

// SalesInvoicesForOrder lists invoices with an item billed against the order
func (c *Client) SalesInvoicesForOrder(ctx context.Context, salesOrder string) ([]domain.SalesInvoice, error) {
	var invoices []domain.SalesInvoice
	err := c.ListDocs(ctx, domain.DoctypeSalesInvoice, ListQuery{
		Fields:     linkedDocFields,
		Filters:    []Filter{ChildEq(domain.DoctypeSalesInvoiceItem, "sales_order", salesOrder)},
		PageLength: AllRows,
	}, &invoices)
	if err != nil {
		return nil, fmt.Errorf("list invoices for %s: %w", salesOrder, err)
	}
	return invoices, nil
}

// Attachments lists files attached to a document
func (c *Client) Attachments(ctx context.Context, doctype, name string) ([]domain.Attachment, error) {
	var files []domain.Attachment
	err := c.ListDocs(ctx, domain.DoctypeFile, ListQuery{
		Fields: attachmentFields,
		Filters: []Filter{
			Eq("attached_to_doctype", doctype),
			Eq("attached_to_name", name),
		},
		PageLength: AllRows,
	}, &files)
	if err != nil {
		return nil, fmt.Errorf("list attachments for %s %s: %w", doctype, name, err)
	}
	return files, nil
}

// DownloadPDFWithFallback tries each print format in turn and returns the
// first that renders, together with the format used.
func (c *Client) DownloadPDFWithFallback(ctx context.Context, doctype, name string, formats []string) ([]byte, string, error) {
	var lastErr error
	for _, format := range formats {
		data, err := c.DownloadPDF(ctx, doctype, name, format)
		if err == nil {
			return data, format, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no print format configured for %s", doctype)
	}
	return nil, "", lastErr
}

// ListSalesInvoices returns one page of a customer's invoices
func (c *Client) ListSalesInvoices(ctx context.Context, f ListFilter) ([]domain.SalesInvoice, error) {
	var invoices []domain.SalesInvoice
	err := c.ListDocs(ctx, domain.DoctypeSalesInvoice, ListQuery{
		Fields:     invoiceListFields,
		Filters:    f.filters("customer", "posting_date"),
		OrderBy:    f.orderBy(),
		Start:      Offset(f.Page, f.PageSize),
		PageLength: f.PageSize,
	}, &invoices)
	if err != nil {
		return nil, fmt.Errorf("list sales invoices: %w", err)
	}
	return invoices, nil
}

// GetSalesInvoice loads one invoice
func (c *Client) GetSalesInvoice(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	var inv domain.SalesInvoice
	if err := c.GetDoc(ctx, domain.DoctypeSalesInvoice, name, &inv); err != nil {
		return nil, fmt.Errorf("get sales invoice %s: %w", name, err)
	}
	return &inv, nil
}

// ListPaymentEntries returns a customer's payments. Only submitted entries are
// returned unless DocStatuses says otherwise.
func (c *Client) ListPaymentEntries(ctx context.Context, f ListFilter) ([]domain.PaymentEntry, error) {
	if len(f.DocStatuses) == 0 {
		f.DocStatuses = []domain.DocStatus{domain.DocStatusSubmitted}
	}
	filters := append([]Filter{Eq("party_type", "Customer")}, f.filters("party", "posting_date")...)

	var payments []domain.PaymentEntry
	err := c.ListDocs(ctx, domain.DoctypePaymentEntry, ListQuery{
		Fields:     paymentListFields,
		Filters:    filters,
		OrderBy:    f.orderBy(),
		Start:      Offset(f.Page, f.PageSize),
		PageLength: f.PageSize,
	}, &payments)
	if err != nil {
		return nil, fmt.Errorf("list payment entries: %w", err)
	}
	return payments, nil
}

// GetPaymentEntry loads one payment entry
func (c *Client) GetPaymentEntry(ctx context.Context, name string) (*domain.PaymentEntry, error) {
	var p domain.PaymentEntry
	if err := c.GetDoc(ctx, domain.DoctypePaymentEntry, name, &p); err != nil {
		return nil, fmt.Errorf("get payment entry %s: %w", name, err)
	}
	return &p, nil
}

// CustomerForUser finds the customer linked to a portal user through the
// custom_user field. Returns "" when none is linked.
func (c *Client) CustomerForUser(ctx context.Context, username string) (string, error) {
	var rows []domain.Customer
	err := c.ListDocs(ctx, domain.DoctypeCustomer, ListQuery{
		Fields:     []string{"name"},
		Filters:    []Filter{Eq("custom_user", username)},
		PageLength: 1,
	}, &rows)
	if err != nil {
		return "", fmt.Errorf("lookup customer for %s: %w", username, err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Name, nil
}

// CreateSalesOrder inserts a new sales order
func (c *Client) CreateSalesOrder(ctx context.Context, order *domain.NewSalesOrder) (*domain.SalesOrder, error) {
	var created domain.SalesOrder
	if err := c.InsertDoc(ctx, domain.DoctypeSalesOrder, order, &created); err != nil {
		return nil, fmt.Errorf("create sales order: %w", err)
	}
	return &created, nil
}

// Catalog

// ListWarehouses returns enabled warehouses, optionally filtered by name
func (c *Client) ListWarehouses(ctx context.Context, search string, page, pageSize int) ([]domain.Warehouse, error) {
	filters := []Filter{Eq("disabled", 0)}
	if search != "" {
		filters = append(filters, Like("warehouse_name", search))
	}
	var rows []domain.Warehouse
	err := c.ListDocs(ctx, domain.DoctypeWarehouse, ListQuery{
		Fields:     warehouseFields,
		Filters:    filters,
		OrderBy:    "warehouse_name asc",
		Start:      Offset(page, pageSize),
		PageLength: pageSizeOrAll(pageSize),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return rows, nil
}

// ListPlants returns every plant
func (c *Client) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	var rows []domain.Plant
	err := c.ListDocs(ctx, domain.DoctypePlant, ListQuery{
		Fields:     []string{"name"},
		OrderBy:    "name asc",
		PageLength: AllRows,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return rows, nil
}

// ListItems returns sales items, optionally narrowed by name and group
func (c *Client) ListItems(ctx context.Context, search, group string, page, pageSize int) ([]domain.Item, error) {
	filters := []Filter{Eq("is_sales_item", 1)}
	if search != "" {
		filters = append(filters, Like("item_name", search))
	}
	if group != "" {
		filters = append(filters, Eq("item_group", group))
	}
	var rows []domain.Item
	err := c.ListDocs(ctx, domain.DoctypeItem, ListQuery{
		Fields:     itemFields,
		Filters:    filters,
		OrderBy:    "item_name asc",
		Start:      Offset(page, pageSize),
		PageLength: pageSizeOrAll(pageSize),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return rows, nil
}

// GetItem loads one item by code
func (c *Client) GetItem(ctx context.Context, code string) (*domain.Item, error) {
	var item domain.Item
	if err := c.GetDoc(ctx, domain.DoctypeItem, code, &item); err != nil {
		return nil, fmt.Errorf("get item %s: %w", code, err)
	}
	return &item, nil
}

// ListPriceLists returns enabled price lists
func (c *Client) ListPriceLists(ctx context.Context) ([]domain.PriceList, error) {
	var rows []domain.PriceList
	err := c.ListDocs(ctx, domain.DoctypePriceList, ListQuery{
		Fields:     []string{"name", "price_list_name", "currency", "enabled"},
		Filters:    []Filter{Eq("enabled", 1)},
		PageLength: AllRows,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	return rows, nil
}

// ItemPriceFilter narrows an item price query
type ItemPriceFilter struct {
	PriceList string
	ItemCode  string
	Search    string
	Page      int
	PageSize  int
}

// ListItemPrices returns item prices ordered by item name
func (c *Client) ListItemPrices(ctx context.Context, f ItemPriceFilter) ([]domain.ItemPrice, error) {
	var filters []Filter
	if f.PriceList != "" {
		filters = append(filters, Eq("price_list", f.PriceList))
	}
	if f.ItemCode != "" {
		filters = append(filters, Eq("item_code", f.ItemCode))
	}
	if f.Search != "" {
		filters = append(filters, Like("item_name", f.Search))
	}
	var rows []domain.ItemPrice
	err := c.ListDocs(ctx, domain.DoctypeItemPrice, ListQuery{
		Fields:     itemPriceFields,
		Filters:    filters,
		OrderBy:    "item_name asc",
		Start:      Offset(f.Page, f.PageSize),
		PageLength: pageSizeOrAll(f.PageSize),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list item prices: %w", err)
	}
	return rows, nil
}

// ItemPrice returns the first price for an item on a price list, or nil
func (c *Client) ItemPrice(ctx context.Context, priceList, itemCode string) (*domain.ItemPrice, error) {
	rows, err := c.ListItemPrices(ctx, ItemPriceFilter{PriceList: priceList, ItemCode: itemCode, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// StockBalance returns Bin rows for an item, optionally in one warehouse
func (c *Client) StockBalance(ctx context.Context, itemCode, warehouse string) ([]domain.StockBalance, error) {
	filters := []Filter{Eq("item_code", itemCode)}
	if warehouse != "" {
		filters = append(filters, Eq("warehouse", warehouse))
	}
	var rows []domain.StockBalance
	err := c.ListDocs(ctx, domain.DoctypeBin, ListQuery{
		Fields:     binFields,
		Filters:    filters,
		PageLength: AllRows,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("stock balance for %s: %w", itemCode, err)
	}
	return rows, nil
}

// ListItemGroups returns enabled item groups
func (c *Client) ListItemGroups(ctx context.Context) ([]domain.ItemGroup, error) {
	var rows []domain.ItemGroup
	err := c.ListDocs(ctx, domain.DoctypeItemGroup, ListQuery{
		Fields:     []string{"name", "item_group_name", "is_group", "parent_item_group"},
		Filters:    []Filter{Eq("disabled", 0)},
		PageLength: AllRows,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list item groups: %w", err)
	}
	return rows, nil
}

// ListCompanies returns the selling companies
func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var rows []domain.Company
	err := c.ListDocs(ctx, domain.DoctypeCompany, ListQuery{
		Fields:     []string{"name", "company_name", "default_currency", "country"},
		PageLength: AllRows,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return rows, nil
}

// Support and content

// CreateComplaint files a customer complaint and returns its name
func (c *Client) CreateComplaint(ctx context.Context, complaint domain.Complaint) (string, error) {
	complaint.Doctype = domain.DoctypeCustomerComplaint
	return c.submitNamed(ctx, domain.DoctypeCustomerComplaint, complaint)
}

// CreateFeedback files customer feedback and returns its name
func (c *Client) CreateFeedback(ctx context.Context, feedback domain.Feedback) (string, error) {
	feedback.Doctype = domain.DoctypeCustomerFeedback
	return c.submitNamed(ctx, domain.DoctypeCustomerFeedback, feedback)
}

// CreateReturnRequest files a sales return request and returns its name
func (c *Client) CreateReturnRequest(ctx context.Context, req domain.ReturnRequest) (string, error) {
	req.Doctype = domain.DoctypeReturnRequest
	return c.submitNamed(ctx, domain.DoctypeReturnRequest, req)
}

func (c *Client) submitNamed(ctx context.Context, doctype string, doc interface{}) (string, error) {
	var created struct {
		Name string `json:"name"`
	}
	if err := c.SubmitDoc(ctx, doctype, doc, &created); err != nil {
		return "", fmt.Errorf("create %s: %w", doctype, err)
	}
	return created.Name, nil
}

// ListNews returns published website news, newest first
func (c *Client) ListNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	var rows []domain.NewsItem
	err := c.ListDocs(ctx, domain.DoctypeWebsiteNews, ListQuery{
		Fields:     []string{"*"},
		OrderBy:    "creation desc",
		PageLength: limit,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return rows, nil
}

func pageSizeOrAll(n int) int {
	if n > 0 {
		return n
	}
	return AllRows
}
