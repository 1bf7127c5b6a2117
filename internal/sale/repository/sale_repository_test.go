package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/testutil"
)

func insertSale(t *testing.T, db *sqlx.DB, repo *SQLRepository, s domain.Sale) int64 {
	t.Helper()

	tx, err := db.Beginx()
	require.NoError(t, err)
	id, err := repo.Insert(context.Background(), tx, s)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func sampleSale(productID int64, at time.Time, method string) domain.Sale {
	s := domain.Sale{
		CreatedAt:     at,
		ProductID:     productID,
		Quantity:      2,
		UnitPrice:     decimal.RequireFromString("12.50"),
		PaymentMethod: method,
		Customer:      "Carla",
	}
	s.ComputeTotal()
	return s
}

func TestRepository_InsertFindListDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	repo := NewSQLRepository(db)
	productID := testutil.InsertProduct(t, db, "Suporte Veicular", "12.50", "5.00", 10)

	first := insertSale(t, db, repo, sampleSale(productID, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), "pix"))
	second := insertSale(t, db, repo, sampleSale(productID, time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC), "dinheiro"))

	got, err := repo.FindByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Suporte Veicular", got.ProductName)
	assert.Equal(t, "25.00", got.Total.StringFixed(2))
	assert.Equal(t, "pix", got.PaymentMethod)

	sales, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second, sales[0].ID)

	tx, err := db.Beginx()
	require.NoError(t, err)
	locked, err := repo.FindByIDForUpdate(ctx, tx, second)
	require.NoError(t, err)
	assert.Equal(t, "dinheiro", locked.PaymentMethod)

	locked.Quantity = 1
	locked.ComputeTotal()
	require.NoError(t, repo.Update(ctx, tx, *locked))
	require.NoError(t, repo.Delete(ctx, tx, first))
	require.NoError(t, tx.Commit())

	got, err = repo.FindByID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "12.50", got.Total.StringFixed(2))

	_, err = repo.FindByID(ctx, first)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
