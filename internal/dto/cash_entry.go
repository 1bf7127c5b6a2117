package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
)

type CashEntryRequest struct {
	Kind        string           `json:"kind"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
}

type OriginResponse struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

type CashEntryResponse struct {
	ID            int64           `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	Kind          string          `json:"kind"`
	Amount        string          `json:"amount"`
	Description   string          `json:"description"`
	Origin        *OriginResponse `json:"origin"`
	SystemManaged bool            `json:"systemManaged"`
}

func NewCashEntryResponse(e domain.CashEntry) CashEntryResponse {
	resp := CashEntryResponse{
		ID:            e.ID,
		CreatedAt:     e.CreatedAt,
		Kind:          string(e.Kind),
		Amount:        money(e.Amount),
		Description:   e.Description,
		SystemManaged: e.IsSystemManaged(),
	}
	if !e.Origin.IsNone() {
		resp.Origin = &OriginResponse{Type: string(e.Origin.Type), ID: e.Origin.ID}
	}
	return resp
}

type CashEntryListResponse struct {
	Items   []CashEntryResponse `json:"items"`
	Balance string              `json:"balance"`
}

func NewCashEntryListResponse(entries []domain.CashEntry, balance decimal.Decimal) CashEntryListResponse {
	items := make([]CashEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewCashEntryResponse(e)
	}
	return CashEntryListResponse{
		Items:   items,
		Balance: money(balance),
	}
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

func NewBalanceResponse(balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{Balance: money(balance)}
}
