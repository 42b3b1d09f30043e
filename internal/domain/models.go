package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseModel contains common fields for the portal's own tables
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a UUID when the caller did not
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// AuthMode records how a portal session talks to the ERP
type AuthMode string

const (
	// AuthModeSession uses the user's own ERP sid cookie
	AuthModeSession AuthMode = "session"
	// AuthModeToken uses the shared ERP API key
	AuthModeToken AuthMode = "token"
)

// PortalSession is a logged-in portal user. The ERP sid and CSRF token are
// only populated in session mode.
type PortalSession struct {
	BaseModel
	Username     string    `gorm:"type:varchar(255);not null;index"`
	FullName     string    `gorm:"type:varchar(255)"`
	CustomerName string    `gorm:"type:varchar(255);not null;index"`
	AuthMode     AuthMode  `gorm:"type:varchar(20);not null"`
	ERPSid       string    `gorm:"type:text;column:erp_sid"`
	ERPCSRFToken string    `gorm:"type:text;column:erp_csrf_token"`
	UserAgent    string    `gorm:"type:text"`
	IPAddress    string    `gorm:"type:varchar(64)"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	LastSeenAt   time.Time `gorm:"not null"`
}

func (PortalSession) TableName() string { return "portal_sessions" }

// IsExpired reports whether the session is no longer usable at now
func (s *PortalSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// DraftOrderStatus is the lifecycle of the order builder
type DraftOrderStatus string

const (
	DraftOrderStatusOpen      DraftOrderStatus = "open"
	DraftOrderStatusSubmitted DraftOrderStatus = "submitted"
)

// DraftOrder is the server-side order builder. A user has at most one open draft.
type DraftOrder struct {
	BaseModel
	Username           string           `gorm:"type:varchar(255);not null;index"`
	CustomerName       string           `gorm:"type:varchar(255);not null"`
	Warehouse          string           `gorm:"type:varchar(255)"`
	Plant              string           `gorm:"type:varchar(255)"`
	Status             DraftOrderStatus `gorm:"type:varchar(20);not null;index"`
	SubmittedOrderName string           `gorm:"type:varchar(140)"`
	SubmittedAt        *time.Time
	Items              []DraftOrderItem `gorm:"foreignKey:DraftOrderID;constraint:OnDelete:CASCADE"`
}

func (DraftOrder) TableName() string { return "draft_orders" }

// Total sums the line amounts
func (d *DraftOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// FindItem returns the index of the line for itemCode or -1
func (d *DraftOrder) FindItem(itemCode string) int {
	for i := range d.Items {
		if d.Items[i].ItemCode == itemCode {
			return i
		}
	}
	return -1
}

// DraftOrderItem is one line of a draft. Amount is always Qty*Rate.
type DraftOrderItem struct {
	BaseModel
	DraftOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	ItemCode     string          `gorm:"type:varchar(140);not null"`
	ItemName     string          `gorm:"type:varchar(255)"`
	Qty          decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Rate         decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,6);not null"`
}

func (DraftOrderItem) TableName() string { return "draft_order_items" }

// Recalculate sets Amount from Qty and Rate
func (i *DraftOrderItem) Recalculate() {
	i.Amount = i.Qty.Mul(i.Rate)
}

// AuditAction represents the type of audit action
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
	AuditActionSubmit AuditAction = "submit"
)

// AuditLog is an append-only record of mutating portal requests
type AuditLog struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key"`
	Username     string      `gorm:"type:varchar(255);index"`
	CustomerName string      `gorm:"type:varchar(255)"`
	Action       AuditAction `gorm:"type:varchar(20);not null"`
	EntityType   string      `gorm:"type:varchar(60);not null"`
	EntityID     string      `gorm:"type:varchar(140)"`
	Method       string      `gorm:"type:varchar(10)"`
	Path         string      `gorm:"type:text"`
	StatusCode   int         `gorm:"not null"`
	IPAddress    string      `gorm:"type:varchar(64);column:ip_address"`
	UserAgent    string      `gorm:"type:text"`
	RequestID    string      `gorm:"type:varchar(100)"`
	NewValues    string      `gorm:"type:text"`
	PerformedAt  time.Time   `gorm:"not null;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// BeforeCreate assigns a UUID when the caller did not
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ArchivedDocument maps a rendered ERP print to its storage key
type ArchivedDocument struct {
	BaseModel
	Doctype     string `gorm:"type:varchar(140);not null;uniqueIndex:idx_archived_doc"`
	DocName     string `gorm:"type:varchar(140);not null;uniqueIndex:idx_archived_doc"`
	PrintFormat string `gorm:"type:varchar(140);not null;uniqueIndex:idx_archived_doc"`
	StoragePath string `gorm:"type:varchar(500);not null"`
	Size        int64  `gorm:"not null"`
}

func (ArchivedDocument) TableName() string { return "archived_documents" }
