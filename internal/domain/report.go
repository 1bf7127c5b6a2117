package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scope narrows a report to a calendar period. Nil fields are not filtered
// and the remaining ones combine with AND.
type Scope struct {
	Day   *int
	Month *int
	Year  *int
}

func (s Scope) Validate() error {
	if s.Day != nil && (*s.Day < 1 || *s.Day > 31) {
		return fmt.Errorf("day must be between 1 and 31")
	}
	if s.Month != nil && (*s.Month < 1 || *s.Month > 12) {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if s.Year != nil && *s.Year < 1 {
		return fmt.Errorf("year must be positive")
	}
	return nil
}

type PaymentTotals struct {
	Cash   decimal.Decimal
	Pix    decimal.Decimal
	Credit decimal.Decimal
	Debit  decimal.Decimal
}

// Add credits amount to every token method matches.
func (t *PaymentTotals) Add(method string, amount decimal.Decimal) {
	if PaymentMatches(method, PaymentCash) {
		t.Cash = t.Cash.Add(amount)
	}
	if PaymentMatches(method, PaymentPix) {
		t.Pix = t.Pix.Add(amount)
	}
	if PaymentMatches(method, PaymentCredit) {
		t.Credit = t.Credit.Add(amount)
	}
	if PaymentMatches(method, PaymentDebit) {
		t.Debit = t.Debit.Add(amount)
	}
}

type ServiceBucket struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

type PeriodReport struct {
	Scope                 Scope
	CashBalance           decimal.Decimal
	TotalsByPaymentMethod PaymentTotals
	ProductRevenue        decimal.Decimal
	ProductCost           decimal.Decimal
	ProductProfit         decimal.Decimal
	RestockSpend          decimal.Decimal
	Resale                ServiceBucket
	Maintenance           ServiceBucket
	DeviceSale            ServiceBucket
}

// AddFinishedService classifies a finished order into its bucket and its
// payment totals. Orders of a custom type only count towards payment totals.
func (r *PeriodReport) AddFinishedService(o ServiceOrder) {
	r.TotalsByPaymentMethod.Add(o.PaymentMethod, o.Total())

	switch {
	case o.IsResale():
		r.Resale.Revenue = r.Resale.Revenue.Add(o.DevicePrice)
		r.Resale.Cost = r.Resale.Cost.Add(o.PartsCost)
		r.Resale.Profit = r.Resale.Revenue.Sub(r.Resale.Cost)
	case o.Type == ServiceTypeMaintenance:
		r.Maintenance.Revenue = r.Maintenance.Revenue.Add(o.LaborCost).Add(o.PartsCost)
		r.Maintenance.Cost = r.Maintenance.Cost.Add(o.PartsCost)
		r.Maintenance.Profit = r.Maintenance.Profit.Add(o.LaborCost)
	case o.Type == ServiceTypeDeviceSale:
		r.DeviceSale.Revenue = r.DeviceSale.Revenue.Add(o.DevicePrice)
		r.DeviceSale.Cost = r.DeviceSale.Cost.Add(o.PartsCost)
		r.DeviceSale.Profit = r.DeviceSale.Revenue.Sub(r.DeviceSale.Cost)
	}
}
