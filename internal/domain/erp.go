package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and quantities travel as JSON numbers, both to the ERP and to the portal UI
	decimal.MarshalJSONWithoutQuotes = true
}

// DocStatus is the ERP submission state shared by all submittable documents
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// String returns the lowercase name used in API responses
func (s DocStatus) String() string {
	switch s {
	case DocStatusDraft:
		return "draft"
	case DocStatusSubmitted:
		return "submitted"
	case DocStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the three ERP states
func (s DocStatus) IsValid() bool {
	return s >= DocStatusDraft && s <= DocStatusCancelled
}

// UnmarshalJSON accepts numbers, numeric strings and null. Unknown
// values decode to -1 so they never match a known state.
func (s *DocStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = DocStatusDraft
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
		if raw == "" {
			*s = DocStatusDraft
			return nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*s = -1
		return nil
	}
	*s = DocStatus(int(f))
	return nil
}

// ParseDocStatus parses a query value such as "0", "1" or "2"
func ParseDocStatus(v string) (DocStatus, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid docstatus %q", v)
	}
	s := DocStatus(n)
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid docstatus %q", v)
	}
	return s, nil
}

// SalesOrder is a customer's order as returned by the ERP
type SalesOrder struct {
	Name            string           `json:"name"`
	Customer        string           `json:"customer,omitempty"`
	Creation        string           `json:"creation,omitempty"`
	Modified        string           `json:"modified,omitempty"`
	DocStatus       DocStatus        `json:"docstatus"`
	Status          string           `json:"status,omitempty"`
	TransactionDate string           `json:"transaction_date,omitempty"`
	DeliveryDate    string           `json:"delivery_date,omitempty"`
	GrandTotal      decimal.Decimal  `json:"grand_total"`
	Currency        string           `json:"currency,omitempty"`
	SetWarehouse    string           `json:"set_warehouse,omitempty"`
	CustomPlant     string           `json:"custom_plant,omitempty"`
	Items           []SalesOrderItem `json:"items,omitempty"`
}

// Identifier implements fulfillment.Document
func (o SalesOrder) Identifier() string { return o.Name }

type SalesOrderItem struct {
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name,omitempty"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	UOM      string          `json:"uom,omitempty"`
}

// DeliveryNote is a record of goods dispatched against one or more orders
type DeliveryNote struct {
	Name        string    `json:"name"`
	DocStatus   DocStatus `json:"docstatus"`
	Status      string    `json:"status,omitempty"`
	PostingDate string    `json:"posting_date,omitempty"`
	PostingTime string    `json:"posting_time,omitempty"`
	Creation    string    `json:"creation,omitempty"`
}

func (d DeliveryNote) Identifier() string { return d.Name }

// SalesInvoice is a billing document linked to one or more orders
type SalesInvoice struct {
	Name              string          `json:"name"`
	Customer          string          `json:"customer,omitempty"`
	DocStatus         DocStatus       `json:"docstatus"`
	Status            string          `json:"status,omitempty"`
	PostingDate       string          `json:"posting_date,omitempty"`
	PostingTime       string          `json:"posting_time,omitempty"`
	DueDate           string          `json:"due_date,omitempty"`
	Creation          string          `json:"creation,omitempty"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Currency          string          `json:"currency,omitempty"`
}

func (i SalesInvoice) Identifier() string { return i.Name }

// PaymentEntry is a payment received from a customer
type PaymentEntry struct {
	Name          string          `json:"name"`
	PostingDate   string          `json:"posting_date,omitempty"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	ModeOfPayment string          `json:"mode_of_payment,omitempty"`
	Status        string          `json:"status,omitempty"`
	ReferenceNo   string          `json:"reference_no,omitempty"`
	DocStatus     DocStatus       `json:"docstatus"`
	Party         string          `json:"party,omitempty"`
	PartyType     string          `json:"party_type,omitempty"`
}

// Attachment is an ERP File row attached to a document
type Attachment struct {
	Name              string `json:"name"`
	FileName          string `json:"file_name"`
	FileURL           string `json:"file_url"`
	AttachedToDoctype string `json:"attached_to_doctype,omitempty"`
	AttachedToName    string `json:"attached_to_name,omitempty"`
	IsPrivate         int    `json:"is_private,omitempty"`
}

// Customer is the ERP customer record mapped to a portal user via custom_user
type Customer struct {
	Name          string `json:"name"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerGroup string `json:"customer_group,omitempty"`
	Territory     string `json:"territory,omitempty"`
	CustomUser    string `json:"custom_user,omitempty"`
}

// Warehouse doubles as the selling price list name for orders placed against it
type Warehouse struct {
	Name            string `json:"name"`
	WarehouseName   string `json:"warehouse_name"`
	WarehouseType   string `json:"warehouse_type,omitempty"`
	Company         string `json:"company,omitempty"`
	Disabled        int    `json:"disabled"`
	ParentWarehouse string `json:"parent_warehouse,omitempty"`
	CustomPlant     string `json:"custom_plant,omitempty"`
}

// Plant is the custom PLANT doctype selected on orders
type Plant struct {
	Name string `json:"name"`
}

type Item struct {
	ItemCode    string `json:"item_code"`
	ItemName    string `json:"item_name"`
	Description string `json:"description,omitempty"`
	ItemGroup   string `json:"item_group,omitempty"`
	IsSalesItem int    `json:"is_sales_item"`
	IsStockItem int    `json:"is_stock_item"`
	StockUOM    string `json:"stock_uom,omitempty"`
	Image       string `json:"image,omitempty"`
}

type PriceList struct {
	Name          string `json:"name"`
	PriceListName string `json:"price_list_name"`
	Currency      string `json:"currency"`
	Enabled       int    `json:"enabled"`
}

type ItemPrice struct {
	Name          string          `json:"name"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	PriceList     string          `json:"price_list"`
	PriceListRate decimal.Decimal `json:"price_list_rate"`
	Currency      string          `json:"currency"`
	ValidFrom     string          `json:"valid_from,omitempty"`
	ValidUpto     string          `json:"valid_upto,omitempty"`
	Warehouse     string          `json:"warehouse,omitempty"`
}

// StockBalance is an ERP Bin row
type StockBalance struct {
	ItemCode     string          `json:"item_code"`
	Warehouse    string          `json:"warehouse"`
	ActualQty    decimal.Decimal `json:"actual_qty"`
	ReservedQty  decimal.Decimal `json:"reserved_qty"`
	ProjectedQty decimal.Decimal `json:"projected_qty"`
}

type ItemGroup struct {
	Name            string `json:"name"`
	ItemGroupName   string `json:"item_group_name"`
	IsGroup         int    `json:"is_group"`
	ParentItemGroup string `json:"parent_item_group,omitempty"`
}

type Company struct {
	Name            string `json:"name"`
	CompanyName     string `json:"company_name"`
	DefaultCurrency string `json:"default_currency"`
	Country         string `json:"country,omitempty"`
}

// NewsItem is a Website News entry shown on the portal home page
type NewsItem struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	PublishedOn string `json:"published_on,omitempty"`
	Creation    string `json:"creation,omitempty"`
}

// Complaint is posted to the Customer Complaints doctype
type Complaint struct {
	Doctype       string `json:"doctype"`
	Customer      string `json:"customer"`
	Subject       string `json:"subject"`
	ComplaintType string `json:"complaint_type"`
	Details       string `json:"details"`
	Priority      string `json:"priority"`
	Attachment    string `json:"attachment,omitempty"`
}

// Feedback is posted to the Customer Feedback doctype
type Feedback struct {
	Doctype      string `json:"doctype"`
	Customer     string `json:"customer"`
	Subject      string `json:"subject"`
	FeedbackType string `json:"feedback_type"`
	Rating       int    `json:"rating"`
	Details      string `json:"details"`
	Attachment   string `json:"attachment,omitempty"`
}

// ReturnRequest is posted to the Sales Return Request doctype
type ReturnRequest struct {
	Doctype    string `json:"doctype"`
	Customer   string `json:"customer"`
	SalesOrder string `json:"sales_order,omitempty"`
	ItemCode   string `json:"item_code,omitempty"`
	Qty        string `json:"qty,omitempty"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

// NewSalesOrder is the document inserted when a draft order is submitted
type NewSalesOrder struct {
	Doctype          string              `json:"doctype"`
	Customer         string              `json:"customer"`
	TransactionDate  string              `json:"transaction_date"`
	DeliveryDate     string              `json:"delivery_date"`
	SetWarehouse     string              `json:"set_warehouse"`
	CustomPlant      string              `json:"custom_plant,omitempty"`
	SellingPriceList string              `json:"selling_price_list"`
	Currency         string              `json:"currency"`
	Items            []NewSalesOrderLine `json:"items"`
}

type NewSalesOrderLine struct {
	ItemCode string          `json:"item_code"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
}

// ERP doctype names
const (
	DoctypeSalesOrder        = "Sales Order"
	DoctypeDeliveryNote      = "Delivery Note"
	DoctypeDeliveryNoteItem  = "Delivery Note Item"
	DoctypeSalesInvoice      = "Sales Invoice"
	DoctypeSalesInvoiceItem  = "Sales Invoice Item"
	DoctypePaymentEntry      = "Payment Entry"
	DoctypeCustomer          = "Customer"
	DoctypeFile              = "File"
	DoctypeWarehouse         = "Warehouse"
	DoctypePlant             = "PLANT"
	DoctypeItem              = "Item"
	DoctypePriceList         = "Price List"
	DoctypeItemPrice         = "Item Price"
	DoctypeBin               = "Bin"
	DoctypeItemGroup         = "Item Group"
	DoctypeCompany           = "Company"
	DoctypeWebsiteNews       = "Website News"
	DoctypeCustomerComplaint = "Customer Complaints"
	DoctypeCustomerFeedback  = "Customer Feedback"
	DoctypeReturnRequest     = "Sales Return Request"
)
