package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/report/repository"
)

type Repository interface {
	SalesInScope(ctx context.Context, scope domain.Scope) ([]repository.SaleLine, error)
	FinishedOrdersInScope(ctx context.Context, scope domain.Scope) ([]domain.ServiceOrder, error)
}

type RestockSource interface {
	SpendInScope(ctx context.Context, scope domain.Scope) (decimal.Decimal, error)
}

type BalanceSource interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
}

// ReportService assembles period reports. It never writes.
type ReportService struct {
	repo    Repository
	restock RestockSource
	cash    BalanceSource
	logger  *zap.Logger
}

func NewReportService(repo Repository, restock RestockSource, cash BalanceSource, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:    repo,
		restock: restock,
		cash:    cash,
		logger:  logger,
	}
}

// Generate builds the report for scope. The cash balance is lifetime and
// ignores the scope.
func (s *ReportService) Generate(ctx context.Context, scope domain.Scope) (*domain.PeriodReport, error) {
	if err := scope.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid report period", apperrors.ValidationDetail{
			Field:   "scope",
			Message: err.Error(),
		})
	}

	report := &domain.PeriodReport{Scope: scope}

	balance, err := s.cash.Balance(ctx)
	if err != nil {
		return nil, err
	}
	report.CashBalance = balance

	lines, err := s.repo.SalesInScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		report.TotalsByPaymentMethod.Add(line.PaymentMethod, line.Total)
		report.ProductRevenue = report.ProductRevenue.Add(line.Total)
		report.ProductCost = report.ProductCost.Add(line.ProductCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	report.ProductProfit = report.ProductRevenue.Sub(report.ProductCost)

	spend, err := s.restock.SpendInScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	report.RestockSpend = spend

	orders, err := s.repo.FinishedOrdersInScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		report.AddFinishedService(o)
	}

	s.logger.Debug("report generated",
		zap.Int("sales", len(lines)),
		zap.Int("finishedServices", len(orders)),
	)
	return report, nil
}
