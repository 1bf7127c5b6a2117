package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CashKind string

const (
	CashInflow  CashKind = "entrada"
	CashOutflow CashKind = "saida"
)

func ParseCashKind(s string) (CashKind, error) {
	switch CashKind(s) {
	case CashInflow, CashOutflow:
		return CashKind(s), nil
	default:
		return "", fmt.Errorf("unknown cash entry kind %q", s)
	}
}

type OriginType string

const (
	OriginNone    OriginType = ""
	OriginSale    OriginType = "sale"
	OriginService OriginType = "service"
)

// Origin points a mirrored cash entry back at the record it was derived from.
// The zero value is a manual entry.
type Origin struct {
	Type OriginType
	ID   int64
}

func NoOrigin() Origin {
	return Origin{}
}

func SaleOrigin(id int64) Origin {
	return Origin{Type: OriginSale, ID: id}
}

func ServiceOrigin(id int64) Origin {
	return Origin{Type: OriginService, ID: id}
}

// ParseOrigin rebuilds an Origin from its stored columns.
func ParseOrigin(originType string, originID *int64) (Origin, error) {
	if originType == "" && originID == nil {
		return NoOrigin(), nil
	}
	if originID == nil {
		return Origin{}, fmt.Errorf("origin %q without id", originType)
	}

	switch OriginType(originType) {
	case OriginSale:
		return SaleOrigin(*originID), nil
	case OriginService:
		return ServiceOrigin(*originID), nil
	default:
		return Origin{}, fmt.Errorf("unknown origin type %q", originType)
	}
}

func (o Origin) IsNone() bool {
	return o.Type == OriginNone
}

func (o Origin) String() string {
	if o.IsNone() {
		return "manual"
	}
	return fmt.Sprintf("%s:%d", o.Type, o.ID)
}

// CashEntry is one movement of the till ("caixa").
type CashEntry struct {
	ID          int64
	CreatedAt   time.Time
	Kind        CashKind
	Amount      decimal.Decimal
	Description string
	Origin      Origin
}

// IsSystemManaged reports whether the entry mirrors a sale or service order.
func (e CashEntry) IsSystemManaged() bool {
	return !e.Origin.IsNone()
}

// Signed is the entry's contribution to the balance.
func (e CashEntry) Signed() decimal.Decimal {
	if e.Kind == CashOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}
