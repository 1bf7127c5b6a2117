package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ServiceTypeMaintenance = "Manutenção"
	ServiceTypeDeviceSale  = "Venda de Aparelho"
)

const (
	ServiceStatusStarted  = "Iniciado"
	ServiceStatusFinished = "Finalizado"
)

// ResaleTag prefixes the description of a device resale.
const ResaleTag = "[REVENDA]"

// ServiceOrder is a repair, device sale or resale job ("serviço").
type ServiceOrder struct {
	ID            int64           `db:"id"`
	CreatedAt     time.Time       `db:"created_at"`
	Description   string          `db:"description"`
	Device        string          `db:"device"`
	Type          string          `db:"type"`
	PartsCost     decimal.Decimal `db:"parts_cost"`
	LaborCost     decimal.Decimal `db:"labor_cost"`
	DevicePrice   decimal.Decimal `db:"device_price"`
	Status        string          `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	Customer      string          `db:"customer"`
}

// Total is the amount charged to the customer, which depends on Type.
func (o ServiceOrder) Total() decimal.Decimal {
	switch o.Type {
	case ServiceTypeDeviceSale:
		return o.DevicePrice
	case ServiceTypeMaintenance:
		return o.PartsCost.Add(o.LaborCost)
	default:
		return decimal.Zero
	}
}

func (o ServiceOrder) IsFinished() bool {
	return o.Status == ServiceStatusFinished
}

func (o ServiceOrder) IsResale() bool {
	return strings.HasPrefix(o.Description, ResaleTag)
}

// IsCashSettled reports whether the order must be mirrored in the cash ledger.
func (o ServiceOrder) IsCashSettled() bool {
	return o.IsFinished() && PaymentMatches(o.PaymentMethod, PaymentCash)
}

// NormalizeCosts zeroes the price fields that do not apply to Type.
func (o *ServiceOrder) NormalizeCosts() {
	switch o.Type {
	case ServiceTypeMaintenance:
		o.DevicePrice = decimal.Zero
	case ServiceTypeDeviceSale:
		o.LaborCost = decimal.Zero
	default:
		o.LaborCost = decimal.Zero
		o.DevicePrice = decimal.Zero
	}
}

// SetResale strips any existing tag from the description and re-applies it
// when resale is set on a device sale.
func (o *ServiceOrder) SetResale(resale bool) {
	description := strings.TrimSpace(strings.ReplaceAll(o.Description, ResaleTag, ""))
	if resale && o.Type == ServiceTypeDeviceSale {
		description = ResaleTag + " " + description
	}
	o.Description = description
}

func IsValidServiceStatus(status string) bool {
	return status == ServiceStatusStarted || status == ServiceStatusFinished
}
