package service

import (
	"context"
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

type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.StockEntry, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.StockEntry, error)
	List(ctx context.Context, limit, offset int) ([]domain.StockEntry, error)
	Insert(ctx context.Context, tx *sqlx.Tx, e domain.StockEntry) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, e domain.StockEntry) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	SpendInScope(ctx context.Context, scope domain.Scope) (decimal.Decimal, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Product, error)
	AdjustStock(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
}

type StockEntryService struct {
	runner   TxRunner
	repo     Repository
	products ProductRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewStockEntryService(runner TxRunner, repo Repository, products ProductRepository, logger *zap.Logger) *StockEntryService {
	return &StockEntryService{
		runner:   runner,
		repo:     repo,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *StockEntryService) Get(ctx context.Context, id int64) (*domain.StockEntry, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns entries newest first together with the restock spend of the
// current calendar month.
func (s *StockEntryService) List(ctx context.Context, limit, offset int) (*dto.StockEntryList, error) {
	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	month, year := int(now.Month()), now.Year()
	spend, err := s.repo.SpendInScope(ctx, domain.Scope{Month: &month, Year: &year})
	if err != nil {
		return nil, err
	}

	return &dto.StockEntryList{Entries: entries, MonthSpend: spend}, nil
}

// Create records a replenishment and adds its quantity to the product stock.
func (s *StockEntryService) Create(ctx context.Context, req dto.StockEntryRequest) (*domain.StockEntry, error) {
	quantity, unitCost, err := validateEntry(req.Quantity, req.UnitCost)
	if err != nil {
		return nil, err
	}

	entry := domain.StockEntry{
		CreatedAt: s.now().UTC(),
		ProductID: req.ProductID,
		Quantity:  quantity,
		UnitCost:  unitCost,
	}
	entry.ComputeTotal()

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		product, err := s.products.FindByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		entry.ProductName = product.Name

		id, err := s.repo.Insert(ctx, tx, entry)
		if err != nil {
			return err
		}
		entry.ID = id

		return s.products.AdjustStock(ctx, tx, req.ProductID, quantity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock entry created",
		zap.Int64("stockEntryId", entry.ID),
		zap.Int64("productId", entry.ProductID),
		zap.Int("quantity", entry.Quantity),
	)
	return &entry, nil
}

// Update changes quantity and unit cost, moving the product stock by the
// quantity difference.
func (s *StockEntryService) Update(ctx context.Context, id int64, req dto.StockEntryUpdateRequest) (*domain.StockEntry, error) {
	quantity, unitCost, err := validateEntry(req.Quantity, req.UnitCost)
	if err != nil {
		return nil, err
	}

	var entry domain.StockEntry
	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		product, err := s.products.FindByIDForUpdate(ctx, tx, current.ProductID)
		if err != nil {
			return err
		}

		entry = *current
		entry.ProductName = product.Name
		entry.Quantity = quantity
		entry.UnitCost = unitCost
		entry.ComputeTotal()

		if err := s.repo.Update(ctx, tx, entry); err != nil {
			return err
		}

		if delta := quantity - current.Quantity; delta != 0 {
			return s.products.AdjustStock(ctx, tx, current.ProductID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock entry updated", zap.Int64("stockEntryId", id), zap.Int("quantity", quantity))
	return &entry, nil
}

// Delete removes the entry and takes its quantity back out of stock.
func (s *StockEntryService) Delete(ctx context.Context, id int64) error {
	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}

		return s.products.AdjustStock(ctx, tx, current.ProductID, -current.Quantity)
	})
	if err != nil {
		return err
	}

	s.logger.Info("stock entry deleted", zap.Int64("stockEntryId", id))
	return nil
}

func validateEntry(quantity int, unitCost *decimal.Decimal) (int, decimal.Decimal, error) {
	var details []apperrors.ValidationDetail

	if quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}

	cost := decimal.Zero
	switch {
	case unitCost == nil:
		details = append(details, apperrors.ValidationDetail{Field: "unitCost", Message: "unitCost is required"})
	case unitCost.IsNegative():
		details = append(details, apperrors.ValidationDetail{Field: "unitCost", Message: "unitCost must be non-negative"})
	default:
		cost = unitCost.Round(2)
	}

	if len(details) > 0 {
		return 0, decimal.Zero, apperrors.NewValidationError("validation failed", details...)
	}
	return quantity, cost, nil
}
