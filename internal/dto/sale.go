package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
)

type SaleRequest struct {
	ProductID     int64            `json:"productId"`
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	PaymentMethod string           `json:"paymentMethod"`
	Customer      string           `json:"customer"`
}

// SaleUpdateRequest keeps the current unit price when UnitPrice is omitted.
type SaleUpdateRequest struct {
	Quantity      int              `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	PaymentMethod string           `json:"paymentMethod"`
	Customer      string           `json:"customer"`
}

type SaleResponse struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName,omitempty"`
	Quantity      int       `json:"quantity"`
	UnitPrice     string    `json:"unitPrice"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"paymentMethod"`
	Customer      string    `json:"customer"`
}

func NewSaleResponse(s domain.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		UnitPrice:     money(s.UnitPrice),
		Total:         money(s.Total),
		PaymentMethod: s.PaymentMethod,
		Customer:      s.Customer,
	}
}

func NewSaleListResponse(sales []domain.Sale) []SaleResponse {
	items := make([]SaleResponse, len(sales))
	for i, s := range sales {
		items[i] = NewSaleResponse(s)
	}
	return items
}
