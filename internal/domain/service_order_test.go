package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newOrder(orderType string) ServiceOrder {
	return ServiceOrder{
		Description: "Troca de tela",
		Type:        orderType,
		PartsCost:   decimal.NewFromInt(100),
		LaborCost:   decimal.NewFromInt(50),
		DevicePrice: decimal.NewFromInt(900),
		Status:      ServiceStatusStarted,
	}
}

func TestServiceOrder_Total(t *testing.T) {
	assert.True(t, decimal.NewFromInt(150).Equal(newOrder(ServiceTypeMaintenance).Total()))
	assert.True(t, decimal.NewFromInt(900).Equal(newOrder(ServiceTypeDeviceSale).Total()))
	assert.True(t, decimal.Zero.Equal(newOrder("Reforma").Total()))
}

func TestServiceOrder_NormalizeCosts(t *testing.T) {
	t.Run("maintenance drops device price", func(t *testing.T) {
		o := newOrder(ServiceTypeMaintenance)
		o.NormalizeCosts()
		assert.True(t, o.DevicePrice.IsZero())
		assert.True(t, decimal.NewFromInt(50).Equal(o.LaborCost))
		assert.True(t, decimal.NewFromInt(100).Equal(o.PartsCost))
	})

	t.Run("device sale drops labor", func(t *testing.T) {
		o := newOrder(ServiceTypeDeviceSale)
		o.NormalizeCosts()
		assert.True(t, o.LaborCost.IsZero())
		assert.True(t, decimal.NewFromInt(900).Equal(o.DevicePrice))
	})

	t.Run("custom type drops both", func(t *testing.T) {
		o := newOrder("Reforma")
		o.NormalizeCosts()
		assert.True(t, o.LaborCost.IsZero())
		assert.True(t, o.DevicePrice.IsZero())
		assert.True(t, decimal.NewFromInt(100).Equal(o.PartsCost))
	})
}

func TestServiceOrder_SetResale(t *testing.T) {
	o := newOrder(ServiceTypeDeviceSale)
	o.Description = "iPhone 11 usado"

	o.SetResale(true)
	assert.Equal(t, "[REVENDA] iPhone 11 usado", o.Description)
	assert.True(t, o.IsResale())

	// re-applying never doubles the tag
	o.SetResale(true)
	assert.Equal(t, "[REVENDA] iPhone 11 usado", o.Description)

	o.SetResale(false)
	assert.Equal(t, "iPhone 11 usado", o.Description)
	assert.False(t, o.IsResale())
}

func TestServiceOrder_SetResale_IgnoredForMaintenance(t *testing.T) {
	o := newOrder(ServiceTypeMaintenance)
	o.Description = "[REVENDA] Troca de bateria"

	o.SetResale(true)

	assert.Equal(t, "Troca de bateria", o.Description)
}

func TestServiceOrder_IsCashSettled(t *testing.T) {
	o := newOrder(ServiceTypeMaintenance)
	o.PaymentMethod = "Dinheiro"
	assert.False(t, o.IsCashSettled())

	o.Status = ServiceStatusFinished
	assert.True(t, o.IsCashSettled())

	o.PaymentMethod = "Pix"
	assert.False(t, o.IsCashSettled())
}

func TestIsValidServiceStatus(t *testing.T) {
	assert.True(t, IsValidServiceStatus("Iniciado"))
	assert.True(t, IsValidServiceStatus("Finalizado"))
	assert.False(t, IsValidServiceStatus("Cancelado"))
	assert.False(t, IsValidServiceStatus(""))
}
