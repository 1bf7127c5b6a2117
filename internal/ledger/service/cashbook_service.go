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
	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
)

type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

type CashEntryRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.CashEntry, error)
	List(ctx context.Context, limit, offset int) ([]domain.CashEntry, error)
	Insert(ctx context.Context, tx *sqlx.Tx, e domain.CashEntry) (int64, error)
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	Balance(ctx context.Context) (decimal.Decimal, error)
}

// CashbookService handles entries typed in by hand. Mirrored entries are read
// here but only the Synchronizer writes them.
type CashbookService struct {
	runner TxRunner
	repo   CashEntryRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewCashbookService(runner TxRunner, repo CashEntryRepository, logger *zap.Logger) *CashbookService {
	return &CashbookService{
		runner: runner,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *CashbookService) CreateManual(ctx context.Context, req dto.CashEntryRequest) (*domain.CashEntry, error) {
	var details []apperrors.ValidationDetail

	kind, err := domain.ParseCashKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "kind",
			Message: fmt.Sprintf("kind must be %q or %q", domain.CashInflow, domain.CashOutflow),
		})
	}

	if req.Amount == nil || !req.Amount.IsPositive() {
		details = append(details, apperrors.ValidationDetail{Field: "amount", Message: "amount must be greater than zero"})
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is required"})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	entry := domain.CashEntry{
		CreatedAt:   s.now().UTC(),
		Kind:        kind,
		Amount:      req.Amount.Round(2),
		Description: description,
		Origin:      domain.NoOrigin(),
	}

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		id, err := s.repo.Insert(ctx, tx, entry)
		if err != nil {
			return err
		}
		entry.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual cash entry created", zap.Int64("cashEntryId", entry.ID), zap.String("kind", string(kind)), zap.String("amount", entry.Amount.StringFixed(2)))
	return &entry, nil
}

// DeleteManual removes a hand-typed entry. Entries mirroring a sale or
// service order are rejected and left intact.
func (s *CashbookService) DeleteManual(ctx context.Context, id int64) error {
	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		entry, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if entry.IsSystemManaged() {
			return apperrors.NewForbiddenError(fmt.Sprintf(
				"cash entry %d mirrors %s and can only change through it", id, entry.Origin))
		}

		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("manual cash entry deleted", zap.Int64("cashEntryId", id))
	return nil
}

func (s *CashbookService) List(ctx context.Context, limit, offset int) ([]domain.CashEntry, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *CashbookService) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.Balance(ctx)
}
