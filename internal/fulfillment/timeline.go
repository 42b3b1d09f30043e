package fulfillment

import (
	"time"

	"github.com/lordsmint/portal-api/internal/domain"
)

// StepStatus is how a timeline step is rendered
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepUpcoming  StepStatus = "upcoming"
)

// OrderStatusCancelled is the ERP status text that switches the timeline to
// its two-step cancelled form. The comparison is exact.
const OrderStatusCancelled = "cancelled"

// Step is one entry of an order timeline
type Step struct {
	Key         string
	Title       string
	Description string
	Status      StepStatus
	Date        *time.Time
}

// BuildTimeline returns the customer-facing steps for an order. Dates are
// interpreted in loc; missing or malformed dates leave Date nil.
func BuildTimeline(order *domain.SalesOrder, p Progress, loc *time.Location) []Step {
	if order != nil && order.Status == OrderStatusCancelled {
		return []Step{
			{
				Key:         "ordered",
				Title:       "Order Placed",
				Description: "Your order has been submitted",
				Status:      StepCompleted,
				Date:        ParseERPDateTime(order.Creation, loc),
			},
			{
				Key:         "cancelled",
				Title:       "Order Cancelled",
				Description: "Order has been cancelled",
				Status:      StepCurrent,
				Date:        ParseERPDateTime(order.Modified, loc),
			},
		}
	}

	var created, approved *time.Time
	if order != nil {
		if p.IsOrderReceived() {
			created = ParseERPDateTime(order.Creation, loc)
		}
		if p.IsOrderApproved() {
			approved = ParseERPDateTime(order.Modified, loc)
		}
	}

	var shippedAt, deliveredAt, invoicedAt *time.Time
	if dn := p.FirstDraftDeliveryNote(); dn != nil && p.HasDeliveryDraft() {
		shippedAt, _ = PostingTimestamp(dn.PostingDate, dn.PostingTime, loc)
	}
	submittedNote := p.FirstSubmittedDeliveryNote()
	if submittedNote != nil {
		deliveredAt, _ = PostingTimestamp(submittedNote.PostingDate, submittedNote.PostingTime, loc)
	}
	if inv := p.FirstSubmittedInvoice(); inv != nil {
		invoicedAt, _ = PostingTimestamp(inv.PostingDate, inv.PostingTime, loc)
	}

	return []Step{
		{
			Key:         "pending",
			Title:       "Order Placed",
			Description: "We've logged your request and queued processing.",
			Status:      statusFor(p.IsOrderReceived()),
			Date:        created,
		},
		{
			Key:         "approved",
			Title:       "Order Approved",
			Description: "Approved, dispatch is being scheduled.",
			Status:      statusFor(p.IsOrderApproved()),
			Date:        approved,
		},
		{
			Key:         "shipped",
			Title:       "Delivery in Process",
			Description: "Order is on its way",
			Status:      statusFor(p.HasDeliveryDraft()),
			Date:        shippedAt,
		},
		{
			Key:         "delivered",
			Title:       "Delivery Note Generated",
			Description: "You can download the delivery note.",
			Status:      statusFor(submittedNote != nil),
			Date:        deliveredAt,
		},
		{
			Key:         "invoice",
			Title:       "Sales Invoice Generated",
			Description: "Invoice ready, view or download a copy.",
			Status:      statusFor(p.IsInvoiceGenerated()),
			Date:        invoicedAt,
		},
	}
}

// VisibleSteps trims the timeline to the steps reached so far
func VisibleSteps(steps []Step, stage Stage) []Step {
	n := int(stage)
	if n < 0 {
		n = 0
	}
	if n > len(steps) {
		n = len(steps)
	}
	return steps[:n]
}

func statusFor(done bool) StepStatus {
	if done {
		return StepCompleted
	}
	return StepUpcoming
}
