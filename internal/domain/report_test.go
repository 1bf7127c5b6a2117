package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestScope_Validate(t *testing.T) {
	tests := []struct {
		name    string
		scope   Scope
		wantErr bool
	}{
		{"empty", Scope{}, false},
		{"full date", Scope{Day: intPtr(15), Month: intPtr(3), Year: intPtr(2024)}, false},
		{"month only", Scope{Month: intPtr(12)}, false},
		{"day zero", Scope{Day: intPtr(0)}, true},
		{"day 32", Scope{Day: intPtr(32)}, true},
		{"month 13", Scope{Month: intPtr(13)}, true},
		{"year zero", Scope{Year: intPtr(0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaymentTotals_Add(t *testing.T) {
	var totals PaymentTotals
	totals.Add("Dinheiro", decimal.NewFromInt(10))
	totals.Add("Pix", decimal.NewFromInt(5))
	totals.Add("Dinheiro crédito", decimal.NewFromInt(3))
	totals.Add("boleto", decimal.NewFromInt(100))

	assert.True(t, decimal.NewFromInt(13).Equal(totals.Cash))
	assert.True(t, decimal.NewFromInt(5).Equal(totals.Pix))
	assert.True(t, decimal.NewFromInt(3).Equal(totals.Credit))
	assert.True(t, totals.Debit.IsZero())
}

func TestPeriodReport_AddFinishedService(t *testing.T) {
	var r PeriodReport

	r.AddFinishedService(ServiceOrder{
		Description:   "[REVENDA] Galaxy A10",
		Type:          ServiceTypeDeviceSale,
		PartsCost:     decimal.NewFromInt(300),
		DevicePrice:   decimal.NewFromInt(500),
		PaymentMethod: "Pix",
	})
	r.AddFinishedService(ServiceOrder{
		Description:   "Troca de conector",
		Type:          ServiceTypeMaintenance,
		PartsCost:     decimal.NewFromInt(20),
		LaborCost:     decimal.NewFromInt(60),
		PaymentMethod: "Dinheiro",
	})
	r.AddFinishedService(ServiceOrder{
		Description:   "Moto G novo",
		Type:          ServiceTypeDeviceSale,
		PartsCost:     decimal.NewFromInt(700),
		DevicePrice:   decimal.NewFromInt(1000),
		PaymentMethod: "Crédito",
	})
	r.AddFinishedService(ServiceOrder{
		Description:   "Limpeza",
		Type:          "Reforma",
		PartsCost:     decimal.NewFromInt(5),
		PaymentMethod: "Dinheiro",
	})

	assert.True(t, decimal.NewFromInt(500).Equal(r.Resale.Revenue))
	assert.True(t, decimal.NewFromInt(300).Equal(r.Resale.Cost))
	assert.True(t, decimal.NewFromInt(200).Equal(r.Resale.Profit))

	assert.True(t, decimal.NewFromInt(80).Equal(r.Maintenance.Revenue))
	assert.True(t, decimal.NewFromInt(20).Equal(r.Maintenance.Cost))
	assert.True(t, decimal.NewFromInt(60).Equal(r.Maintenance.Profit))

	assert.True(t, decimal.NewFromInt(1000).Equal(r.DeviceSale.Revenue))
	assert.True(t, decimal.NewFromInt(700).Equal(r.DeviceSale.Cost))
	assert.True(t, decimal.NewFromInt(300).Equal(r.DeviceSale.Profit))

	assert.True(t, decimal.NewFromInt(80).Equal(r.TotalsByPaymentMethod.Cash))
	assert.True(t, decimal.NewFromInt(500).Equal(r.TotalsByPaymentMethod.Pix))
	assert.True(t, decimal.NewFromInt(1000).Equal(r.TotalsByPaymentMethod.Credit))
}
