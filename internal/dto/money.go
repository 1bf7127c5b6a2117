package dto

import "github.com/shopspring/decimal"

// money renders an amount with two decimal places, as printed on the till.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
