package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// InsertProduct seeds a product row and returns its id.
func InsertProduct(t *testing.T, db *sqlx.DB, name, salePrice, cost string, stock int) int64 {
	t.Helper()

	result, err := db.Exec(
		db.Rebind(`INSERT INTO products (name, type, sale_price, cost, stock) VALUES (?, 'Produto', ?, ?, ?)`),
		name, decimal.RequireFromString(salePrice), decimal.RequireFromString(cost), stock,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read product id: %v", err)
	}
	return id
}

// ProductStock reads the current stock of a product.
func ProductStock(t *testing.T, db *sqlx.DB, id int64) int {
	t.Helper()

	var stock int
	if err := db.Get(&stock, db.Rebind(`SELECT stock FROM products WHERE id = ?`), id); err != nil {
		t.Fatalf("failed to read product stock: %v", err)
	}
	return stock
}
