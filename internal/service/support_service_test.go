package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSupportService(fake *fakeERP) *service.SupportService {
	return service.NewSupportService(fake, &config.StorageConfig{MaxUploadSizeMB: 1}, zap.NewNop())
}

func TestSupportService_CreateRequestsCarryCustomer(t *testing.T) {
	fake := newFakeERP()
	svc := newSupportService(fake)
	ctx := customerCtx("ACME")

	complaint, err := svc.CreateComplaint(ctx, domain.ComplaintRequest{
		Subject: " Late delivery ", ComplaintType: "Delivery", Details: "Truck arrived two days late", Priority: "High",
	})
	require.NoError(t, err)
	assert.Equal(t, "COMP-0001", complaint.Name)
	assert.Equal(t, domain.DoctypeCustomerComplaint, complaint.Doctype)
	require.Len(t, fake.complaints, 1)
	assert.Equal(t, "ACME", fake.complaints[0].Customer)
	assert.Equal(t, "Late delivery", fake.complaints[0].Subject)

	feedback, err := svc.CreateFeedback(ctx, domain.FeedbackRequest{Subject: "Great", FeedbackType: "Service", Rating: 5, Details: "Fast"})
	require.NoError(t, err)
	assert.Equal(t, domain.DoctypeCustomerFeedback, feedback.Doctype)
	assert.Equal(t, 5, fake.feedback[0].Rating)

	ret, err := svc.CreateReturnRequest(ctx, domain.ReturnRequestInput{SalesOrder: "SO-1", ItemCode: "CEM-50", Qty: "3", Reason: "Damaged bags"})
	require.NoError(t, err)
	assert.Equal(t, "RET-0001", ret.Name)
	assert.Equal(t, "SO-1", fake.returns[0].SalesOrder)
	assert.Equal(t, "ACME", fake.returns[0].Customer)
}

func TestSupportService_RequiresCustomer(t *testing.T) {
	svc := newSupportService(newFakeERP())
	_, err := svc.CreateComplaint(context.Background(), domain.ComplaintRequest{})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestSupportService_UploadAttachment(t *testing.T) {
	fake := newFakeERP()
	svc := newSupportService(fake)
	ctx := customerCtx("ACME")

	file, err := svc.UploadAttachment(ctx, &service.Upload{Filename: "../../etc/photo.jpg", Size: 4, Content: strings.NewReader("data")})
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", file.FileName)
	assert.Equal(t, []string{"photo.jpg"}, fake.uploads)

	_, err = svc.UploadAttachment(ctx, &service.Upload{Filename: "big.jpg", Size: 2 << 20, Content: strings.NewReader("")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.UploadAttachment(ctx, &service.Upload{Filename: " ", Size: 1, Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.UploadAttachment(ctx, nil)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSupportService_NewsLimit(t *testing.T) {
	fake := newFakeERP()
	for i := 0; i < 60; i++ {
		fake.news = append(fake.news, domain.NewsItem{Name: "NEWS"})
	}
	svc := newSupportService(fake)

	news, err := svc.News(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, news, 10)

	news, err = svc.News(context.Background(), 500)
	require.NoError(t, err)
	assert.Len(t, news, 50)
}
