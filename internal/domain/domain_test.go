package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocStatus_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.DocStatus
	}{
		{`1`, domain.DocStatusSubmitted},
		{`"2"`, domain.DocStatusCancelled},
		{`1.0`, domain.DocStatusSubmitted},
		{`null`, domain.DocStatusDraft},
		{`""`, domain.DocStatusDraft},
		{`"submitted"`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var doc struct {
				DocStatus domain.DocStatus `json:"docstatus"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"docstatus":`+tt.raw+`}`), &doc))
			assert.Equal(t, tt.want, doc.DocStatus)
		})
	}
}

func TestParseDocStatus(t *testing.T) {
	s, err := domain.ParseDocStatus(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, "submitted", s.String())

	_, err = domain.ParseDocStatus("3")
	assert.Error(t, err)
	_, err = domain.ParseDocStatus("x")
	assert.Error(t, err)
	assert.Equal(t, "unknown", domain.DocStatus(-1).String())
}

func TestDraftOrder_TotalAndFindItem(t *testing.T) {
	line := func(code string, qty, rate int64) domain.DraftOrderItem {
		item := domain.DraftOrderItem{ItemCode: code, Qty: decimal.NewFromInt(qty), Rate: decimal.NewFromInt(rate)}
		item.Recalculate()
		return item
	}
	draft := &domain.DraftOrder{Items: []domain.DraftOrderItem{line("CEM-42", 3, 5200), line("CEM-32", 2, 4800)}}

	assert.True(t, draft.Total().Equal(decimal.NewFromInt(25200)))
	assert.Equal(t, 1, draft.FindItem("CEM-32"))
	assert.Equal(t, -1, draft.FindItem("cem-32"))
}

func TestPortalSession_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &domain.PortalSession{ExpiresAt: now}

	assert.True(t, s.IsExpired(now))
	assert.False(t, s.IsExpired(now.Add(-time.Second)))
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(domain.NewSalesOrderLine{ItemCode: "CEM-42", Qty: decimal.RequireFromString("2.5"), Rate: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item_code":"CEM-42","qty":2.5,"rate":100}`, string(out))
}
