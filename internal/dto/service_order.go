package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
)

type ServiceOrderRequest struct {
	Description   string           `json:"description"`
	Device        string           `json:"device"`
	Type          string           `json:"type"`
	Resale        bool             `json:"resale"`
	PartsCost     *decimal.Decimal `json:"partsCost"`
	LaborCost     *decimal.Decimal `json:"laborCost"`
	DevicePrice   *decimal.Decimal `json:"devicePrice"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"paymentMethod"`
	Customer      string           `json:"customer"`
}

type ServiceOrderResponse struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Description   string    `json:"description"`
	Device        string    `json:"device"`
	Type          string    `json:"type"`
	Resale        bool      `json:"resale"`
	PartsCost     string    `json:"partsCost"`
	LaborCost     string    `json:"laborCost"`
	DevicePrice   string    `json:"devicePrice"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	Customer      string    `json:"customer"`
}

func NewServiceOrderResponse(o domain.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		Description:   o.Description,
		Device:        o.Device,
		Type:          o.Type,
		Resale:        o.IsResale(),
		PartsCost:     money(o.PartsCost),
		LaborCost:     money(o.LaborCost),
		DevicePrice:   money(o.DevicePrice),
		Total:         money(o.Total()),
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Customer:      o.Customer,
	}
}

func NewServiceOrderListResponse(orders []domain.ServiceOrder) []ServiceOrderResponse {
	items := make([]ServiceOrderResponse, len(orders))
	for i, o := range orders {
		items[i] = NewServiceOrderResponse(o)
	}
	return items
}
