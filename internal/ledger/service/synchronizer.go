package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smartfinance/internal/domain"
)

type MirrorRepository interface {
	FindByOrigin(ctx context.Context, tx *sqlx.Tx, origin domain.Origin) (*domain.CashEntry, error)
	Insert(ctx context.Context, tx *sqlx.Tx, e domain.CashEntry) (int64, error)
	UpdateAmount(ctx context.Context, tx *sqlx.Tx, id int64, amount decimal.Decimal, description string) error
	DeleteByOrigin(ctx context.Context, tx *sqlx.Tx, origin domain.Origin) (int64, error)
}

// Synchronizer keeps the cash ledger mirror of sales and service orders in
// step with their payment method, status and total. Every call runs inside
// the caller's transaction so the mirror commits or rolls back with the row.
type Synchronizer struct {
	repo   MirrorRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSynchronizer(repo MirrorRepository, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// SyncSale runs after a sale is inserted or updated.
func (s *Synchronizer) SyncSale(ctx context.Context, tx *sqlx.Tx, sale domain.Sale) error {
	return s.sync(ctx, tx, domain.SaleOrigin(sale.ID), sale.IsCash(), sale.Total, saleDescription(sale))
}

// RemoveSale runs before a sale row is deleted.
func (s *Synchronizer) RemoveSale(ctx context.Context, tx *sqlx.Tx, saleID int64) error {
	return s.remove(ctx, tx, domain.SaleOrigin(saleID))
}

// SyncServiceOrder runs after a service order is inserted or updated. Only
// finished, cash-paid orders are mirrored.
func (s *Synchronizer) SyncServiceOrder(ctx context.Context, tx *sqlx.Tx, order domain.ServiceOrder) error {
	return s.sync(ctx, tx, domain.ServiceOrigin(order.ID), order.IsCashSettled(), order.Total(), serviceDescription(order))
}

// RemoveServiceOrder runs before a service order row is deleted.
func (s *Synchronizer) RemoveServiceOrder(ctx context.Context, tx *sqlx.Tx, orderID int64) error {
	return s.remove(ctx, tx, domain.ServiceOrigin(orderID))
}

func (s *Synchronizer) sync(ctx context.Context, tx *sqlx.Tx, origin domain.Origin, mirrored bool, amount decimal.Decimal, description string) error {
	existing, err := s.repo.FindByOrigin(ctx, tx, origin)
	if err != nil {
		return err
	}

	if !mirrored {
		if existing == nil {
			return nil
		}
		if _, err := s.repo.DeleteByOrigin(ctx, tx, origin); err != nil {
			return err
		}
		s.logger.Info("cash mirror removed", zap.Stringer("origin", origin), zap.Int64("cashEntryId", existing.ID))
		return nil
	}

	if existing == nil {
		id, err := s.repo.Insert(ctx, tx, domain.CashEntry{
			CreatedAt:   s.now().UTC(),
			Kind:        domain.CashInflow,
			Amount:      amount,
			Description: description,
			Origin:      origin,
		})
		if err != nil {
			return err
		}
		s.logger.Info("cash mirror created", zap.Stringer("origin", origin), zap.Int64("cashEntryId", id), zap.String("amount", amount.StringFixed(2)))
		return nil
	}

	if existing.Amount.Equal(amount) && existing.Description == description {
		return nil
	}

	if err := s.repo.UpdateAmount(ctx, tx, existing.ID, amount, description); err != nil {
		return err
	}
	s.logger.Info("cash mirror updated", zap.Stringer("origin", origin), zap.Int64("cashEntryId", existing.ID), zap.String("amount", amount.StringFixed(2)))
	return nil
}

func (s *Synchronizer) remove(ctx context.Context, tx *sqlx.Tx, origin domain.Origin) error {
	removed, err := s.repo.DeleteByOrigin(ctx, tx, origin)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("cash mirror removed", zap.Stringer("origin", origin))
	}
	return nil
}

func saleDescription(sale domain.Sale) string {
	return withSuffix(fmt.Sprintf("Venda #%d", sale.ID), sale.Customer)
}

func serviceDescription(order domain.ServiceOrder) string {
	return withSuffix(fmt.Sprintf("Serviço #%d", order.ID), order.Description)
}

func withSuffix(prefix, suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return prefix
	}
	description := prefix + " - " + suffix
	// cash_entries.description is VARCHAR(255)
	if r := []rune(description); len(r) > 255 {
		description = string(r[:255])
	}
	return description
}
