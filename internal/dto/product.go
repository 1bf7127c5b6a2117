package dto

import (
	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
)

type ProductRequest struct {
	Name      string           `json:"name"`
	Type      string           `json:"type"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	Cost      *decimal.Decimal `json:"cost"`
	Stock     *int             `json:"stock"`
}

type ProductFilter struct {
	Query  string
	Limit  int
	Offset int
}

type ProductResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	SalePrice string `json:"salePrice"`
	Cost      string `json:"cost"`
	Stock     int    `json:"stock"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		SalePrice: money(p.SalePrice),
		Cost:      money(p.Cost),
		Stock:     p.Stock,
	}
}

type ProductList struct {
	Products       []domain.Product
	StockCostValue decimal.Decimal
	StockSaleValue decimal.Decimal
}

type ProductListResponse struct {
	Items          []ProductResponse `json:"items"`
	StockCostValue string            `json:"stockCostValue"`
	StockSaleValue string            `json:"stockSaleValue"`
}

func NewProductListResponse(list *ProductList) ProductListResponse {
	items := make([]ProductResponse, len(list.Products))
	for i, p := range list.Products {
		items[i] = NewProductResponse(p)
	}
	return ProductListResponse{
		Items:          items,
		StockCostValue: money(list.StockCostValue),
		StockSaleValue: money(list.StockSaleValue),
	}
}

// DeleteResult carries the best-effort warning of a committed product delete.
type DeleteResult struct {
	Warning string `json:"warning,omitempty"`
}
