package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/repository"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDraftService(t *testing.T, fake *fakeERP) (*service.DraftOrderService, *repository.DraftOrderRepository) {
	t.Helper()
	repo := repository.NewDraftOrderRepository(setupTestDB(t))
	svc := service.NewDraftOrderService(repo, fake, testERPConfig(), &config.StorageConfig{MaxUploadSizeMB: 1}, time.UTC, zap.NewNop())
	return svc, repo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDraftOrderService_GetCreatesOnce(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftOrderStatusOpen, first.Status)
	assert.Equal(t, "ACME", first.Customer)
	assert.Empty(t, first.Items)

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestDraftOrderService_AddItemMerges(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	_, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", ItemName: "Cement 50kg", Qty: dec("2"), Rate: dec("4500")})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "ROD-12", Qty: dec("10"), Rate: dec("1200.5")})
	require.NoError(t, err)
	draft, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("3"), Rate: dec("9999")})
	require.NoError(t, err)

	require.Len(t, draft.Items, 2)
	assert.Equal(t, "CEM-50", draft.Items[0].ItemCode)
	assert.True(t, dec("5").Equal(draft.Items[0].Qty))
	assert.True(t, dec("4500").Equal(draft.Items[0].Rate), "merge keeps the existing rate")
	assert.True(t, dec("22500").Equal(draft.Items[0].Amount))
	assert.True(t, dec("34505").Equal(draft.Total))
	assert.Equal(t, "₦34,505.00", draft.TotalDisplay)

	reloaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, dec("34505").Equal(reloaded.Total))
}

func TestDraftOrderService_AddItemFillsPriceFromWarehouse(t *testing.T) {
	fake := newFakeERP()
	fake.prices = []domain.ItemPrice{
		{ItemCode: "CEM-50", ItemName: "Cement 50kg", PriceList: "Lagos Depot", PriceListRate: dec("4700")},
	}
	svc, _ := newDraftService(t, fake)
	ctx := customerCtx("ACME")

	_, err := svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	draft, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("2")})
	require.NoError(t, err)

	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Cement 50kg", draft.Items[0].ItemName)
	assert.True(t, dec("9400").Equal(draft.Items[0].Amount))
}

func TestDraftOrderService_ItemValidation(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	_, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "A", Qty: dec("0"), Rate: dec("1")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "A", Qty: dec("1"), Rate: dec("-1")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: " ", Qty: dec("1")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.UpdateItemQty(ctx, "A", domain.UpdateDraftItemRequest{Qty: dec("2")})
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.RemoveItem(ctx, "A")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDraftOrderService_UpdateRemoveClear(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	_, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "A", Qty: dec("1"), Rate: dec("10")})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "B", Qty: dec("1"), Rate: dec("20")})
	require.NoError(t, err)

	draft, err := svc.UpdateItemQty(ctx, "A", domain.UpdateDraftItemRequest{Qty: dec("4")})
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(draft.Items[0].Amount))

	_, err = svc.UpdateItemQty(ctx, "A", domain.UpdateDraftItemRequest{Qty: dec("-1")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	draft, err = svc.RemoveItem(ctx, "A")
	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "B", draft.Items[0].ItemCode)

	_, err = svc.SetPlant(ctx, domain.SetPlantRequest{Plant: "Plant A"})
	require.NoError(t, err)
	draft, err = svc.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, draft.Items)
	assert.Equal(t, "Plant A", draft.Plant)
}

func TestDraftOrderService_SubmitPreconditions(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	_, err := svc.Submit(ctx, nil)
	assert.ErrorIs(t, err, service.ErrNoWarehouse)

	_, err = svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, nil)
	assert.ErrorIs(t, err, service.ErrDraftEmpty)

	_, err = svc.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestDraftOrderService_Submit(t *testing.T) {
	fake := newFakeERP()
	svc, repo := newDraftService(t, fake)
	ctx := customerCtx("ACME")

	_, err := svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	_, err = svc.SetPlant(ctx, domain.SetPlantRequest{Plant: "Plant A"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("2"), Rate: dec("4500")})
	require.NoError(t, err)

	receipt := &service.Upload{Filename: "teller.jpg", Size: 5, Content: strings.NewReader("image")}
	resp, err := svc.Submit(ctx, receipt)
	require.NoError(t, err)

	assert.Equal(t, "SAL-ORD-0001", resp.SalesOrder)
	assert.Equal(t, domain.DraftOrderStatusSubmitted, resp.Draft.Status)
	require.NotNil(t, resp.Receipt)
	assert.Equal(t, "/files/teller.jpg", resp.Receipt.FileURL)

	require.Len(t, fake.created, 1)
	order := fake.created[0]
	today := time.Now().UTC()
	assert.Equal(t, "ACME", order.Customer)
	assert.Equal(t, "Lagos Depot", order.SetWarehouse)
	assert.Equal(t, "Lagos Depot", order.SellingPriceList)
	assert.Equal(t, "Plant A", order.CustomPlant)
	assert.Equal(t, "NGN", order.Currency)
	assert.Equal(t, today.Format("2006-01-02"), order.TransactionDate)
	assert.Equal(t, today.AddDate(0, 0, 7).Format("2006-01-02"), order.DeliveryDate)
	require.Len(t, order.Items, 1)
	assert.True(t, dec("2").Equal(order.Items[0].Qty))

	submitted, err := repo.ListSubmittedByUsername(context.Background(), "buyer@ACME.test", 5)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, "SAL-ORD-0001", submitted[0].SubmittedOrderName)

	// A fresh draft starts after submit
	next, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Draft.ID, next.ID)
	assert.Empty(t, next.Items)
}

func TestDraftOrderService_SubmitERPFailureKeepsDraft(t *testing.T) {
	fake := newFakeERP()
	fake.createErr = errERPDown
	svc, _ := newDraftService(t, fake)
	ctx := customerCtx("ACME")

	_, err := svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "A", Qty: dec("1"), Rate: dec("10")})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, nil)
	assert.ErrorIs(t, err, service.ErrUpstream)

	draft, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftOrderStatusOpen, draft.Status)
	assert.Len(t, draft.Items, 1)
}

func TestDraftOrderService_SubmitRejectsLargeReceipt(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	_, err := svc.Submit(customerCtx("ACME"), &service.Upload{Filename: "big.pdf", Size: 2 << 20, Content: strings.NewReader("")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDraftOrderService_PurgeStale(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	removed, err := svc.PurgeStale(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = svc.PurgeStale(context.Background(), -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestDraftOrderService_ConcurrentEditsKeepEveryLine(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	var wg sync.WaitGroup
	errs := make(chan error, 13)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: fmt.Sprintf("ITEM-%d", i), Qty: dec("1"), Rate: dec("10")})
			errs <- err
		}(i)
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("1"), Rate: dec("4500")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	draft, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, draft.Items, 9)
	var cement domain.DraftOrderItemDTO
	for _, item := range draft.Items {
		if item.ItemCode == "CEM-50" {
			cement = item
		}
	}
	assert.True(t, dec("5").Equal(cement.Qty))
}

func TestDraftOrderService_CollapsedSubmit(t *testing.T) {
	fake := newFakeERP()
	svc, _ := newDraftService(t, fake)
	ctx := customerCtx("ACME")

	_, err := svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("2"), Rate: dec("4500")})
	require.NoError(t, err)

	fake.createStarted = make(chan struct{}, 1)
	fake.createRelease = make(chan struct{})

	firstCtx, cancelFirst := context.WithCancel(ctx)
	type outcome struct {
		resp *domain.SubmitDraftResponse
		err  error
	}
	first := make(chan outcome, 1)
	go func() {
		resp, err := svc.Submit(firstCtx, &service.Upload{Filename: "teller.jpg", Size: 5, Content: strings.NewReader("image")})
		first <- outcome{resp, err}
	}()
	<-fake.createStarted

	second := make(chan outcome, 1)
	go func() {
		resp, err := svc.Submit(ctx, &service.Upload{Filename: "other.jpg", Size: 5, Content: strings.NewReader("other")})
		second <- outcome{resp, err}
	}()
	// Let the second submit join the one in flight, then drop the first client
	time.Sleep(100 * time.Millisecond)
	cancelFirst()
	close(fake.createRelease)

	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, "SAL-ORD-0001", got.resp.SalesOrder)
	require.NotNil(t, got.resp.Receipt)
	assert.Equal(t, "/files/teller.jpg", got.resp.Receipt.FileURL)

	other := <-second
	assert.ErrorIs(t, other.err, service.ErrConflict)
	assert.Contains(t, other.err.Error(), "SAL-ORD-0001")

	assert.Len(t, fake.created, 1)
	assert.Equal(t, []string{"teller.jpg"}, fake.uploads)
}

func TestDraftOrderService_Submissions(t *testing.T) {
	svc, _ := newDraftService(t, newFakeERP())
	ctx := customerCtx("ACME")

	none, err := svc.Submissions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.SetWarehouse(ctx, domain.SetWarehouseRequest{Warehouse: "Lagos Depot"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddDraftItemRequest{ItemCode: "CEM-50", Qty: dec("2"), Rate: dec("4500")})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, nil)
	require.NoError(t, err)

	submitted, err := svc.Submissions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, domain.DraftOrderStatusSubmitted, submitted[0].Status)
	assert.Equal(t, "SAL-ORD-0001", submitted[0].SalesOrder)
	require.NotNil(t, submitted[0].SubmittedAt)
	require.Len(t, submitted[0].Items, 1)
	assert.True(t, dec("9000").Equal(submitted[0].Total))

	other, err := svc.Submissions(customerCtx("Globex"), 5)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = svc.Submissions(context.Background(), 5)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
