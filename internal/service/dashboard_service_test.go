package service_test

import (
	"context"
	"testing"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_Summary(t *testing.T) {
	fake := newFakeERP()
	for i := 0; i < 7; i++ {
		status := domain.DocStatusSubmitted
		if i%3 == 0 {
			status = domain.DocStatusDraft
		}
		fake.orderList = append(fake.orderList, domain.SalesOrder{Name: "SO", DocStatus: status})
	}
	fake.invoiceList = []domain.SalesInvoice{
		{Name: "INV-1", OutstandingAmount: dec("1500.50")},
		{Name: "INV-2", OutstandingAmount: dec("0")},
		{Name: "INV-3", OutstandingAmount: dec("-20")},
		{Name: "INV-4", OutstandingAmount: dec("499.50")},
	}
	fake.paymentList = []domain.PaymentEntry{{Name: "PAY-9", PaidAmount: dec("3000")}}
	svc := service.NewDashboardService(fake, zap.NewNop())

	dto, err := svc.Summary(customerCtx("ACME"))
	require.NoError(t, err)

	assert.Equal(t, "ACME", dto.Customer)
	assert.Equal(t, 3, dto.DraftOrders)
	assert.Equal(t, 4, dto.SubmittedOrders)
	assert.Len(t, dto.RecentOrders, 5)
	assert.True(t, dec("2000").Equal(dto.OutstandingTotal))
	assert.Equal(t, "₦2,000.00", dto.OutstandingDisplay)
	assert.Equal(t, 2, dto.UnpaidInvoices)
	require.NotNil(t, dto.LastPayment)
	assert.Equal(t, "PAY-9", dto.LastPayment.Name)
	assert.Empty(t, dto.PartialFailures)
}

func TestDashboardService_PartialFailures(t *testing.T) {
	fake := newFakeERP()
	fake.orderListErr = errERPDown
	fake.paymentListErr = errERPDown
	fake.invoiceList = []domain.SalesInvoice{{Name: "INV-1", OutstandingAmount: dec("10")}}
	svc := service.NewDashboardService(fake, zap.NewNop())

	dto, err := svc.Summary(customerCtx("ACME"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"orders", "payments"}, dto.PartialFailures)
	assert.Empty(t, dto.RecentOrders)
	assert.NotNil(t, dto.RecentOrders)
	assert.Nil(t, dto.LastPayment)
	assert.Equal(t, 1, dto.UnpaidInvoices)
}

func TestDashboardService_RequiresUser(t *testing.T) {
	svc := service.NewDashboardService(newFakeERP(), zap.NewNop())
	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
