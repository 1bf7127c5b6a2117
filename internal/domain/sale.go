package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a product leaving stock ("saída").
type Sale struct {
	ID            int64           `db:"id"`
	CreatedAt     time.Time       `db:"created_at"`
	ProductID     int64           `db:"product_id"`
	ProductName   string          `db:"product_name"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	Customer      string          `db:"customer"`
}

func (s *Sale) ComputeTotal() {
	s.Total = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

func (s Sale) IsCash() bool {
	return PaymentMatches(s.PaymentMethod, PaymentCash)
}
