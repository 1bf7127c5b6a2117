package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/testutil"
)

func insertProduct(t *testing.T, db *sqlx.DB, repo *SQLRepository, p domain.Product) int64 {
	t.Helper()

	tx, err := db.Beginx()
	require.NoError(t, err)
	id, err := repo.Insert(context.Background(), tx, p)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func sampleProduct(name string, stock int) domain.Product {
	return domain.Product{
		Name:      name,
		Type:      domain.DefaultProductType,
		SalePrice: decimal.RequireFromString("20.00"),
		Cost:      decimal.RequireFromString("10.00"),
		Stock:     stock,
	}
}

func TestNewSQLRepository(t *testing.T) {
	db := &sqlx.DB{}
	repo := NewSQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	id := insertProduct(t, db, repo, sampleProduct("Carregador Turbo", 7))

	p, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Carregador Turbo", p.Name)
	assert.Equal(t, domain.DefaultProductType, p.Type)
	assert.True(t, decimal.NewFromInt(20).Equal(p.SalePrice))
	assert.True(t, decimal.NewFromInt(10).Equal(p.Cost))
	assert.Equal(t, 7, p.Stock)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	_, err := NewSQLRepository(db).FindByID(context.Background(), 999)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_List_OrderedByNameWithSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	insertProduct(t, db, repo, sampleProduct("Fone Bluetooth", 1))
	insertProduct(t, db, repo, sampleProduct("Cabo USB-C", 1))
	insertProduct(t, db, repo, sampleProduct("Cabo Lightning", 1))

	all, err := repo.List(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cabo Lightning", all[0].Name)
	assert.Equal(t, "Cabo USB-C", all[1].Name)
	assert.Equal(t, "Fone Bluetooth", all[2].Name)

	cabos, err := repo.List(context.Background(), dto.ProductFilter{Query: "CABO"})
	require.NoError(t, err)
	assert.Len(t, cabos, 2)

	page, err := repo.List(context.Background(), dto.ProductFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Cabo USB-C", page[0].Name)
}

func TestRepository_List_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	products, err := NewSQLRepository(db).List(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestRepository_AdjustStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	id := insertProduct(t, db, repo, sampleProduct("Capinha", 1))

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.AdjustStock(context.Background(), tx, id, -3))
	require.NoError(t, tx.Commit())

	p, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, -2, p.Stock)
}

func TestRepository_AdjustStock_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	err = NewSQLRepository(db).AdjustStock(context.Background(), tx, 42, 1)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_CountReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	id := insertProduct(t, db, repo, sampleProduct("Película", 10))

	_, err := db.Exec(`INSERT INTO stock_entries (created_at, product_id, quantity, unit_cost, total_cost)
		VALUES (CURRENT_TIMESTAMP, ?, 5, 10, 50)`, id)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sales (created_at, product_id, quantity, unit_price, total, payment_method, customer)
		VALUES (CURRENT_TIMESTAMP, ?, 1, 20, 20, 'Pix', 'Ana')`, id)
	require.NoError(t, err)

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	refs, err := repo.CountReferences(context.Background(), tx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, refs)
}

func TestRepository_ResetSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	first := insertProduct(t, db, repo, sampleProduct("A", 1))
	insertProduct(t, db, repo, sampleProduct("B", 1))

	_, err := db.Exec(`DELETE FROM products`)
	require.NoError(t, err)
	require.NoError(t, repo.ResetSequence(context.Background()))

	again := insertProduct(t, db, repo, sampleProduct("C", 1))
	assert.Equal(t, first, again)
	assert.Equal(t, int64(1), again)
}
