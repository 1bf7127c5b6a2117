package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry is a replenishment of a product ("entrada").
type StockEntry struct {
	ID          int64           `db:"id"`
	CreatedAt   time.Time       `db:"created_at"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	TotalCost   decimal.Decimal `db:"total_cost"`
}

// ComputeTotal sets TotalCost from the current quantity and unit cost.
func (e *StockEntry) ComputeTotal() {
	e.TotalCost = e.UnitCost.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
