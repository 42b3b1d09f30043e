package mapper

import (
	"time"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/fulfillment"
)

// ToOrderSummaryDTO converts a sales order list row
func ToOrderSummaryDTO(order *domain.SalesOrder) domain.OrderSummaryDTO {
	return domain.OrderSummaryDTO{
		Name:              order.Name,
		TransactionDate:   order.TransactionDate,
		Creation:          order.Creation,
		Status:            order.Status,
		DocStatus:         order.DocStatus,
		DocStatusLabel:    order.DocStatus.String(),
		GrandTotal:        order.GrandTotal,
		GrandTotalDisplay: FormatAmount(order.GrandTotal, order.Currency),
		Currency:          order.Currency,
	}
}

// ToOrderSummaryDTOs converts a page of orders
func ToOrderSummaryDTOs(orders []domain.SalesOrder) []domain.OrderSummaryDTO {
	dtos := make([]domain.OrderSummaryDTO, len(orders))
	for i := range orders {
		dtos[i] = ToOrderSummaryDTO(&orders[i])
	}
	return dtos
}

// ToOrderDTO converts a full sales order with items
func ToOrderDTO(order *domain.SalesOrder) domain.OrderDTO {
	items := make([]domain.OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = domain.OrderItemDTO{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Qty:      item.Qty,
			Rate:     item.Rate,
			Amount:   item.Amount,
			UOM:      item.UOM,
		}
	}
	return domain.OrderDTO{
		OrderSummaryDTO: ToOrderSummaryDTO(order),
		Customer:        order.Customer,
		Modified:        order.Modified,
		DeliveryDate:    order.DeliveryDate,
		Warehouse:       order.SetWarehouse,
		Plant:           order.CustomPlant,
		Items:           items,
	}
}

// ToDeliveryNoteDTO converts a delivery note, resolving its posting time in loc
func ToDeliveryNoteDTO(note *domain.DeliveryNote, loc *time.Location) domain.LinkedDocumentDTO {
	postedAt, _ := fulfillment.PostingTimestamp(note.PostingDate, note.PostingTime, loc)
	return domain.LinkedDocumentDTO{
		Name:           note.Name,
		DocStatus:      note.DocStatus,
		DocStatusLabel: note.DocStatus.String(),
		Status:         note.Status,
		PostingDate:    note.PostingDate,
		PostingTime:    note.PostingTime,
		PostedAt:       postedAt,
	}
}

// ToInvoiceLinkDTO converts an invoice linked to an order
func ToInvoiceLinkDTO(invoice *domain.SalesInvoice, loc *time.Location) domain.LinkedDocumentDTO {
	postedAt, _ := fulfillment.PostingTimestamp(invoice.PostingDate, invoice.PostingTime, loc)
	return domain.LinkedDocumentDTO{
		Name:           invoice.Name,
		DocStatus:      invoice.DocStatus,
		DocStatusLabel: invoice.DocStatus.String(),
		Status:         invoice.Status,
		PostingDate:    invoice.PostingDate,
		PostingTime:    invoice.PostingTime,
		PostedAt:       postedAt,
	}
}

func ToDeliveryNoteDTOs(notes []domain.DeliveryNote, loc *time.Location) []domain.LinkedDocumentDTO {
	dtos := make([]domain.LinkedDocumentDTO, len(notes))
	for i := range notes {
		dtos[i] = ToDeliveryNoteDTO(&notes[i], loc)
	}
	return dtos
}

func ToInvoiceLinkDTOs(invoices []domain.SalesInvoice, loc *time.Location) []domain.LinkedDocumentDTO {
	dtos := make([]domain.LinkedDocumentDTO, len(invoices))
	for i := range invoices {
		dtos[i] = ToInvoiceLinkDTO(&invoices[i], loc)
	}
	return dtos
}

// ToAttachmentDTOs converts ERP File rows
func ToAttachmentDTOs(files []domain.Attachment) []domain.AttachmentDTO {
	dtos := make([]domain.AttachmentDTO, len(files))
	for i, f := range files {
		dtos[i] = ToAttachmentDTO(&f)
	}
	return dtos
}

func ToAttachmentDTO(file *domain.Attachment) domain.AttachmentDTO {
	return domain.AttachmentDTO{
		Name:     file.Name,
		FileName: file.FileName,
		FileURL:  file.FileURL,
	}
}

// ToProgressDTO flattens a resolved fulfillment progress
func ToProgressDTO(p fulfillment.Progress, loc *time.Location) domain.ProgressDTO {
	dto := domain.ProgressDTO{
		Stage:               int(p.Stage),
		StageName:           p.Stage.String(),
		IsOrderReceived:     p.IsOrderReceived(),
		IsOrderApproved:     p.IsOrderApproved(),
		HasDeliveryDraft:    p.HasDeliveryDraft(),
		IsDeliveryCompleted: p.IsDeliveryCompleted(),
		IsInvoiceGenerated:  p.IsInvoiceGenerated(),
	}
	if dn := p.FirstDraftDeliveryNote(); dn != nil {
		linked := ToDeliveryNoteDTO(dn, loc)
		dto.FirstDraftDeliveryNote = &linked
	}
	if dn := p.FirstSubmittedDeliveryNote(); dn != nil {
		linked := ToDeliveryNoteDTO(dn, loc)
		dto.FirstSubmittedDeliveryNote = &linked
	}
	if inv := p.FirstSubmittedInvoice(); inv != nil {
		linked := ToInvoiceLinkDTO(inv, loc)
		dto.FirstSubmittedInvoice = &linked
	}
	return dto
}

// ToTimelineDTOs converts timeline steps
func ToTimelineDTOs(steps []fulfillment.Step) []domain.TimelineStepDTO {
	dtos := make([]domain.TimelineStepDTO, len(steps))
	for i, s := range steps {
		dtos[i] = domain.TimelineStepDTO{
			Key:    s.Key,
			Title:  s.Title,
			Status: string(s.Status),
			Date:   s.Date,
		}
	}
	return dtos
}

// ToDraftOrderDTO converts the order builder state
func ToDraftOrderDTO(draft *domain.DraftOrder) domain.DraftOrderDTO {
	items := make([]domain.DraftOrderItemDTO, len(draft.Items))
	for i, item := range draft.Items {
		items[i] = domain.DraftOrderItemDTO{
			ItemCode: item.ItemCode,
			ItemName: item.ItemName,
			Qty:      item.Qty,
			Rate:     item.Rate,
			Amount:   item.Amount,
		}
	}
	total := draft.Total()
	return domain.DraftOrderDTO{
		ID:           draft.ID.String(),
		Customer:     draft.CustomerName,
		Warehouse:    draft.Warehouse,
		Plant:        draft.Plant,
		Status:       draft.Status,
		Items:        items,
		Total:        total,
		TotalDisplay: FormatNaira(total),
		UpdatedAt:    draft.UpdatedAt,
		SalesOrder:   draft.SubmittedOrderName,
		SubmittedAt:  draft.SubmittedAt,
	}
}

// ToInvoiceDTO converts a sales invoice row
func ToInvoiceDTO(invoice *domain.SalesInvoice) domain.InvoiceDTO {
	return domain.InvoiceDTO{
		Name:               invoice.Name,
		PostingDate:        invoice.PostingDate,
		DueDate:            invoice.DueDate,
		DocStatus:          invoice.DocStatus,
		DocStatusLabel:     invoice.DocStatus.String(),
		Status:             invoice.Status,
		GrandTotal:         invoice.GrandTotal,
		GrandTotalDisplay:  FormatAmount(invoice.GrandTotal, invoice.Currency),
		Outstanding:        invoice.OutstandingAmount,
		OutstandingDisplay: FormatAmount(invoice.OutstandingAmount, invoice.Currency),
		Currency:           invoice.Currency,
	}
}

func ToInvoiceDTOs(invoices []domain.SalesInvoice) []domain.InvoiceDTO {
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = ToInvoiceDTO(&invoices[i])
	}
	return dtos
}

// ToPaymentDTO converts a payment entry
func ToPaymentDTO(payment *domain.PaymentEntry) domain.PaymentDTO {
	return domain.PaymentDTO{
		Name:              payment.Name,
		PostingDate:       payment.PostingDate,
		PaidAmount:        payment.PaidAmount,
		PaidAmountDisplay: FormatNaira(payment.PaidAmount),
		ModeOfPayment:     payment.ModeOfPayment,
		Status:            payment.Status,
		ReferenceNo:       payment.ReferenceNo,
	}
}

func ToPaymentDTOs(payments []domain.PaymentEntry) []domain.PaymentDTO {
	dtos := make([]domain.PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = ToPaymentDTO(&payments[i])
	}
	return dtos
}
