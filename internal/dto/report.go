package dto

import "smartfinance/internal/domain"

type ScopeResponse struct {
	Day   *int `json:"day"`
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

type PaymentTotalsResponse struct {
	Cash   string `json:"cash"`
	Pix    string `json:"pix"`
	Credit string `json:"credit"`
	Debit  string `json:"debit"`
}

type BucketResponse struct {
	Revenue string `json:"revenue"`
	Cost    string `json:"cost"`
	Profit  string `json:"profit"`
}

type ReportResponse struct {
	Scope                 ScopeResponse         `json:"scope"`
	CashBalance           string                `json:"cashBalance"`
	TotalsByPaymentMethod PaymentTotalsResponse `json:"totalsByPaymentMethod"`
	ProductRevenue        string                `json:"productRevenue"`
	ProductCost           string                `json:"productCost"`
	ProductProfit         string                `json:"productProfit"`
	RestockSpend          string                `json:"restockSpend"`
	Resale                BucketResponse        `json:"resale"`
	Maintenance           BucketResponse        `json:"maintenance"`
	DeviceSale            BucketResponse        `json:"deviceSale"`
}

func newBucketResponse(b domain.ServiceBucket) BucketResponse {
	return BucketResponse{
		Revenue: money(b.Revenue),
		Cost:    money(b.Cost),
		Profit:  money(b.Profit),
	}
}

func NewReportResponse(r *domain.PeriodReport) ReportResponse {
	return ReportResponse{
		Scope: ScopeResponse{
			Day:   r.Scope.Day,
			Month: r.Scope.Month,
			Year:  r.Scope.Year,
		},
		CashBalance: money(r.CashBalance),
		TotalsByPaymentMethod: PaymentTotalsResponse{
			Cash:   money(r.TotalsByPaymentMethod.Cash),
			Pix:    money(r.TotalsByPaymentMethod.Pix),
			Credit: money(r.TotalsByPaymentMethod.Credit),
			Debit:  money(r.TotalsByPaymentMethod.Debit),
		},
		ProductRevenue: money(r.ProductRevenue),
		ProductCost:    money(r.ProductCost),
		ProductProfit:  money(r.ProductProfit),
		RestockSpend:   money(r.RestockSpend),
		Resale:         newBucketResponse(r.Resale),
		Maintenance:    newBucketResponse(r.Maintenance),
		DeviceSale:     newBucketResponse(r.DeviceSale),
	}
}
