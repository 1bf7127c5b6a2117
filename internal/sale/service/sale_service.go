package service

import (
	"context"
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

type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.Sale, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Sale, error)
	List(ctx context.Context, limit, offset int) ([]domain.Sale, error)
	Insert(ctx context.Context, tx *sqlx.Tx, s domain.Sale) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, s domain.Sale) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Product, error)
	AdjustStock(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
}

// LedgerSync mirrors cash sales into the cash ledger within the caller's tx.
type LedgerSync interface {
	SyncSale(ctx context.Context, tx *sqlx.Tx, sale domain.Sale) error
	RemoveSale(ctx context.Context, tx *sqlx.Tx, saleID int64) error
}

type SaleService struct {
	runner   TxRunner
	repo     Repository
	products ProductRepository
	ledger   LedgerSync
	logger   *zap.Logger
	now      func() time.Time
}

func NewSaleService(runner TxRunner, repo Repository, products ProductRepository, ledger LedgerSync, logger *zap.Logger) *SaleService {
	return &SaleService{
		runner:   runner,
		repo:     repo,
		products: products,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SaleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SaleService) List(ctx context.Context, limit, offset int) ([]domain.Sale, error) {
	return s.repo.List(ctx, limit, offset)
}

// Create sells quantity units of a product. Stock may go negative.
func (s *SaleService) Create(ctx context.Context, req dto.SaleRequest) (*domain.Sale, error) {
	if err := validateSale(req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	sale := domain.Sale{
		CreatedAt:     s.now().UTC(),
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Customer:      strings.TrimSpace(req.Customer),
	}

	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		product, err := s.products.FindByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}

		sale.ProductName = product.Name
		sale.UnitPrice = product.SalePrice
		if req.UnitPrice != nil {
			sale.UnitPrice = req.UnitPrice.Round(2)
		}
		sale.ComputeTotal()

		if err := s.products.AdjustStock(ctx, tx, product.ID, -sale.Quantity); err != nil {
			return err
		}

		id, err := s.repo.Insert(ctx, tx, sale)
		if err != nil {
			return err
		}
		sale.ID = id

		return s.ledger.SyncSale(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		zap.Int64("saleId", sale.ID),
		zap.Int64("productId", sale.ProductID),
		zap.Int("quantity", sale.Quantity),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	return &sale, nil
}

// Update edits a sale, moving stock by the quantity difference and
// re-syncing its cash mirror from the new payment method and total.
func (s *SaleService) Update(ctx context.Context, id int64, req dto.SaleUpdateRequest) (*domain.Sale, error) {
	if err := validateSale(req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	var sale domain.Sale
	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		product, err := s.products.FindByIDForUpdate(ctx, tx, current.ProductID)
		if err != nil {
			return err
		}

		sale = *current
		sale.ProductName = product.Name
		sale.Quantity = req.Quantity
		if req.UnitPrice != nil {
			sale.UnitPrice = req.UnitPrice.Round(2)
		}
		sale.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
		sale.Customer = strings.TrimSpace(req.Customer)
		sale.ComputeTotal()

		if diff := current.Quantity - sale.Quantity; diff != 0 {
			if err := s.products.AdjustStock(ctx, tx, current.ProductID, diff); err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, tx, sale); err != nil {
			return err
		}

		return s.ledger.SyncSale(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale updated", zap.Int64("saleId", id), zap.String("total", sale.Total.StringFixed(2)))
	return &sale, nil
}

// Delete removes the cash mirror, returns the quantity to stock and deletes
// the sale.
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.ledger.RemoveSale(ctx, tx, id); err != nil {
			return err
		}

		if err := s.products.AdjustStock(ctx, tx, current.ProductID, current.Quantity); err != nil {
			return err
		}

		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sale deleted", zap.Int64("saleId", id))
	return nil
}

func validateSale(quantity int, unitPrice *decimal.Decimal) error {
	var details []apperrors.ValidationDetail

	if quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "unitPrice", Message: "unitPrice must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
