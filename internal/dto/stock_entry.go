package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
)

type StockEntryRequest struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
}

type StockEntryUpdateRequest struct {
	Quantity int              `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unitCost"`
}

type StockEntryResponse struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitCost    string    `json:"unitCost"`
	TotalCost   string    `json:"totalCost"`
}

func NewStockEntryResponse(e domain.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		UnitCost:    money(e.UnitCost),
		TotalCost:   money(e.TotalCost),
	}
}

type StockEntryList struct {
	Entries    []domain.StockEntry
	MonthSpend decimal.Decimal
}

type StockEntryListResponse struct {
	Items      []StockEntryResponse `json:"items"`
	MonthSpend string               `json:"monthSpend"`
}

func NewStockEntryListResponse(list *StockEntryList) StockEntryListResponse {
	items := make([]StockEntryResponse, len(list.Entries))
	for i, e := range list.Entries {
		items[i] = NewStockEntryResponse(e)
	}
	return StockEntryListResponse{
		Items:      items,
		MonthSpend: money(list.MonthSpend),
	}
}
