package database_test

import (
	"context"
	"testing"

	"github.com/lordsmint/portal-api/internal/database"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewSQLiteMigratesPortalSchema(t *testing.T) {
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)

	for _, model := range []interface{}{
		&domain.PortalSession{},
		&domain.DraftOrder{},
		&domain.DraftOrderItem{},
		&domain.AuditLog{},
		&domain.ArchivedDocument{},
	} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestNewSQLiteAllowsOneOpenDraftPerUser(t *testing.T) {
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)

	open := func(status domain.DraftOrderStatus) error {
		return db.Create(&domain.DraftOrder{Username: "buyer@acme.test", CustomerName: "ACME", Status: status}).Error
	}
	require.NoError(t, open(domain.DraftOrderStatusOpen))
	require.NoError(t, open(domain.DraftOrderStatusSubmitted))
	require.NoError(t, open(domain.DraftOrderStatusSubmitted))

	assert.ErrorIs(t, open(domain.DraftOrderStatusOpen), gorm.ErrDuplicatedKey)
}
