package fulfillment

import "github.com/lordsmint/portal-api/internal/domain"

// Stage is the furthest fulfillment checkpoint an order has reached
type Stage int

const (
	StageNone Stage = iota
	StageOrderReceived
	StageOrderApproved
	StageDeliveryInProcess
	StageDeliveryCompleted
	StageInvoiceGenerated
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageOrderReceived:
		return "order_received"
	case StageOrderApproved:
		return "order_approved"
	case StageDeliveryInProcess:
		return "delivery_in_process"
	case StageDeliveryCompleted:
		return "delivery_completed"
	case StageInvoiceGenerated:
		return "invoice_generated"
	default:
		return "unknown"
	}
}

// Progress is the resolved stage together with the deduplicated documents it
// was computed from.
type Progress struct {
	Stage         Stage
	DeliveryNotes []domain.DeliveryNote
	Invoices      []domain.SalesInvoice
}

// Resolve computes the highest stage satisfied by any condition. Conditions
// do not gate each other: a draft order with a submitted invoice resolves to
// StageInvoiceGenerated.
func Resolve(order *domain.SalesOrder, notes []domain.DeliveryNote, invoices []domain.SalesInvoice) Progress {
	p := Progress{
		DeliveryNotes: Dedupe(notes),
		Invoices:      Dedupe(invoices),
	}

	if order == nil {
		p.Stage = StageNone
	} else {
		p.Stage = StageOrderReceived
		if order.DocStatus == domain.DocStatusSubmitted {
			p.raise(StageOrderApproved)
		}
	}
	if p.FirstDraftDeliveryNote() != nil {
		p.raise(StageDeliveryInProcess)
	}
	if p.FirstSubmittedDeliveryNote() != nil {
		p.raise(StageDeliveryCompleted)
	}
	if p.FirstSubmittedInvoice() != nil {
		p.raise(StageInvoiceGenerated)
	}
	return p
}

func (p *Progress) raise(s Stage) {
	if s > p.Stage {
		p.Stage = s
	}
}

func (p Progress) IsOrderReceived() bool     { return p.Stage >= StageOrderReceived }
func (p Progress) IsOrderApproved() bool     { return p.Stage >= StageOrderApproved }
func (p Progress) HasDeliveryDraft() bool    { return p.Stage >= StageDeliveryInProcess }
func (p Progress) IsDeliveryCompleted() bool { return p.Stage >= StageDeliveryCompleted }
func (p Progress) IsInvoiceGenerated() bool  { return p.Stage >= StageInvoiceGenerated }

// FirstDraftDeliveryNote returns the first draft note in backend order
func (p Progress) FirstDraftDeliveryNote() *domain.DeliveryNote {
	return firstNote(p.DeliveryNotes, domain.DocStatusDraft)
}

// FirstSubmittedDeliveryNote returns the first submitted note in backend order
func (p Progress) FirstSubmittedDeliveryNote() *domain.DeliveryNote {
	return firstNote(p.DeliveryNotes, domain.DocStatusSubmitted)
}

// FirstSubmittedInvoice returns the first submitted invoice in backend order
func (p Progress) FirstSubmittedInvoice() *domain.SalesInvoice {
	for i := range p.Invoices {
		if p.Invoices[i].DocStatus == domain.DocStatusSubmitted {
			return &p.Invoices[i]
		}
	}
	return nil
}

func firstNote(notes []domain.DeliveryNote, status domain.DocStatus) *domain.DeliveryNote {
	for i := range notes {
		if notes[i].DocStatus == status {
			return &notes[i]
		}
	}
	return nil
}
