package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PageResponse wraps a page of ERP rows. The ERP does not return totals, so
// HasMore is set when the page came back full.
type PageResponse struct {
	Data     interface{} `json:"data"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	HasMore  bool        `json:"hasMore"`
}

type ListResponse struct {
	Data interface{} `json:"data"`
}

// Auth

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      AuthUserDTO `json:"user"`
}

type AuthUserDTO struct {
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	Customer  string    `json:"customer"`
	AuthMode  AuthMode  `json:"authMode"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Orders

type OrderSummaryDTO struct {
	Name              string          `json:"name"`
	TransactionDate   string          `json:"transactionDate,omitempty"`
	Creation          string          `json:"creation,omitempty"`
	Status            string          `json:"status,omitempty"`
	DocStatus         DocStatus       `json:"docstatus"`
	DocStatusLabel    string          `json:"docstatusLabel"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	GrandTotalDisplay string          `json:"grandTotalDisplay"`
	Currency          string          `json:"currency,omitempty"`
}

type OrderItemDTO struct {
	ItemCode string          `json:"itemCode"`
	ItemName string          `json:"itemName,omitempty"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	UOM      string          `json:"uom,omitempty"`
}

type OrderDTO struct {
	OrderSummaryDTO
	Customer     string         `json:"customer"`
	Modified     string         `json:"modified,omitempty"`
	DeliveryDate string         `json:"deliveryDate,omitempty"`
	Warehouse    string         `json:"warehouse,omitempty"`
	Plant        string         `json:"plant,omitempty"`
	Items        []OrderItemDTO `json:"items"`
}

// LinkedDocumentDTO is a delivery note or invoice linked to an order
type LinkedDocumentDTO struct {
	Name           string     `json:"name"`
	DocStatus      DocStatus  `json:"docstatus"`
	DocStatusLabel string     `json:"docstatusLabel"`
	Status         string     `json:"status,omitempty"`
	PostingDate    string     `json:"postingDate,omitempty"`
	PostingTime    string     `json:"postingTime,omitempty"`
	PostedAt       *time.Time `json:"postedAt"`
}

type AttachmentDTO struct {
	Name     string `json:"name"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

// ProgressDTO exposes the resolved fulfillment stage and its checkpoints
type ProgressDTO struct {
	Stage                      int                `json:"stage"`
	StageName                  string             `json:"stageName"`
	IsOrderReceived            bool               `json:"isOrderReceived"`
	IsOrderApproved            bool               `json:"isOrderApproved"`
	HasDeliveryDraft           bool               `json:"hasDeliveryDraft"`
	IsDeliveryCompleted        bool               `json:"isDeliveryCompleted"`
	IsInvoiceGenerated         bool               `json:"isInvoiceGenerated"`
	FirstDraftDeliveryNote     *LinkedDocumentDTO `json:"firstDraftDeliveryNote,omitempty"`
	FirstSubmittedDeliveryNote *LinkedDocumentDTO `json:"firstSubmittedDeliveryNote,omitempty"`
	FirstSubmittedInvoice      *LinkedDocumentDTO `json:"firstSubmittedInvoice,omitempty"`
}

type TimelineStepDTO struct {
	Key    string     `json:"key"`
	Title  string     `json:"title"`
	Status string     `json:"status"`
	Date   *time.Time `json:"date"`
}

type OrderDetailsDTO struct {
	Order         OrderDTO            `json:"order"`
	DeliveryNotes []LinkedDocumentDTO `json:"deliveryNotes"`
	Invoices      []LinkedDocumentDTO `json:"invoices"`
	Attachments   []AttachmentDTO     `json:"attachments"`
	Progress      ProgressDTO         `json:"progress"`
	Timeline      []TimelineStepDTO   `json:"timeline"`
}

type OrderTimelineDTO struct {
	Name     string            `json:"name"`
	Progress ProgressDTO       `json:"progress"`
	Timeline []TimelineStepDTO `json:"timeline"`
}

// Draft orders

type DraftOrderItemDTO struct {
	ItemCode string          `json:"itemCode"`
	ItemName string          `json:"itemName"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

type DraftOrderDTO struct {
	ID           string              `json:"id"`
	Customer     string              `json:"customer"`
	Warehouse    string              `json:"warehouse,omitempty"`
	Plant        string              `json:"plant,omitempty"`
	Status       DraftOrderStatus    `json:"status"`
	Items        []DraftOrderItemDTO `json:"items"`
	Total        decimal.Decimal     `json:"total"`
	TotalDisplay string              `json:"totalDisplay"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	// Set once the draft has been placed as an ERP sales order
	SalesOrder  string     `json:"salesOrder,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type AddDraftItemRequest struct {
	ItemCode string          `json:"itemCode" validate:"required,max=140"`
	ItemName string          `json:"itemName" validate:"max=255"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
}

type UpdateDraftItemRequest struct {
	Qty decimal.Decimal `json:"qty"`
}

type SetWarehouseRequest struct {
	Warehouse string `json:"warehouse" validate:"required,max=255"`
}

type SetPlantRequest struct {
	Plant string `json:"plant" validate:"max=255"`
}

type SubmitDraftResponse struct {
	SalesOrder string          `json:"salesOrder"`
	Order      OrderSummaryDTO `json:"order"`
	Receipt    *AttachmentDTO  `json:"receipt,omitempty"`
	Draft      DraftOrderDTO   `json:"draft"`
}

// Invoices and payments

type InvoiceDTO struct {
	Name               string          `json:"name"`
	PostingDate        string          `json:"postingDate,omitempty"`
	DueDate            string          `json:"dueDate,omitempty"`
	DocStatus          DocStatus       `json:"docstatus"`
	DocStatusLabel     string          `json:"docstatusLabel"`
	Status             string          `json:"status,omitempty"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	GrandTotalDisplay  string          `json:"grandTotalDisplay"`
	Outstanding        decimal.Decimal `json:"outstandingAmount"`
	OutstandingDisplay string          `json:"outstandingDisplay"`
	Currency           string          `json:"currency,omitempty"`
}

type PaymentDTO struct {
	Name              string          `json:"name"`
	PostingDate       string          `json:"postingDate,omitempty"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	PaidAmountDisplay string          `json:"paidAmountDisplay"`
	ModeOfPayment     string          `json:"modeOfPayment,omitempty"`
	Status            string          `json:"status,omitempty"`
	ReferenceNo       string          `json:"referenceNo,omitempty"`
}

// Catalog

// PricedItem is an item joined with its selected price
type PricedItem struct {
	ItemCode  string          `json:"itemCode"`
	ItemName  string          `json:"itemName"`
	ItemGroup string          `json:"itemGroup,omitempty"`
	StockUOM  string          `json:"stockUom,omitempty"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency,omitempty"`
	PriceList string          `json:"priceList,omitempty"`
	ValidFrom string          `json:"validFrom,omitempty"`
	ValidUpto string          `json:"validUpto,omitempty"`
	Warehouse string          `json:"warehouse,omitempty"`
}

// Support

type ComplaintRequest struct {
	Subject       string `json:"subject" validate:"required,max=255"`
	ComplaintType string `json:"complaintType" validate:"required,oneof=Product Delivery Billing Service Other"`
	Details       string `json:"details" validate:"required,max=5000"`
	Priority      string `json:"priority" validate:"required,oneof=Low Medium High"`
	Attachment    string `json:"attachment" validate:"max=500"`
}

type FeedbackRequest struct {
	Subject      string `json:"subject" validate:"required,max=255"`
	FeedbackType string `json:"feedbackType" validate:"required,max=60"`
	Rating       int    `json:"rating" validate:"gte=1,lte=5"`
	Details      string `json:"details" validate:"required,max=5000"`
	Attachment   string `json:"attachment" validate:"max=500"`
}

type ReturnRequestInput struct {
	SalesOrder string `json:"salesOrder" validate:"max=140"`
	ItemCode   string `json:"itemCode" validate:"max=140"`
	Qty        string `json:"qty" validate:"omitempty,numeric"`
	Reason     string `json:"reason" validate:"required,max=255"`
	Details    string `json:"details" validate:"max=5000"`
	Attachment string `json:"attachment" validate:"max=500"`
}

type SupportSubmissionDTO struct {
	Name    string `json:"name"`
	Doctype string `json:"doctype"`
}

// Dashboard

type DashboardDTO struct {
	Customer           string            `json:"customer"`
	DraftOrders        int               `json:"draftOrders"`
	SubmittedOrders    int               `json:"submittedOrders"`
	RecentOrders       []OrderSummaryDTO `json:"recentOrders"`
	OutstandingTotal   decimal.Decimal   `json:"outstandingTotal"`
	OutstandingDisplay string            `json:"outstandingDisplay"`
	UnpaidInvoices     int               `json:"unpaidInvoices"`
	LastPayment        *PaymentDTO       `json:"lastPayment,omitempty"`
	PartialFailures    []string          `json:"partialFailures,omitempty"`
}
