package domain

import "github.com/shopspring/decimal"

const DefaultProductType = "Produto"

type Product struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Type      string          `db:"type"`
	SalePrice decimal.Decimal `db:"sale_price"`
	Cost      decimal.Decimal `db:"cost"`
	// Stock is not validated and may go negative after sales.
	Stock int `db:"stock"`
}

func (p Product) StockCostValue() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(int64(p.Stock)))
}

func (p Product) StockSaleValue() decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}
