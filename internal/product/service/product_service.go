package service

import (
	"context"
	"strings"

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
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]domain.Product, error)
	Insert(ctx context.Context, tx *sqlx.Tx, p domain.Product) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, p domain.Product) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	CountReferences(ctx context.Context, tx *sqlx.Tx, id int64) (int, error)
	Count(ctx context.Context, tx *sqlx.Tx) (int, error)
	ResetSequence(ctx context.Context) error
}

type ProductService struct {
	runner TxRunner
	repo   Repository
	logger *zap.Logger
}

func NewProductService(runner TxRunner, repo Repository, logger *zap.Logger) *ProductService {
	return &ProductService{
		runner: runner,
		repo:   repo,
		logger: logger,
	}
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductList, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := &dto.ProductList{Products: products}
	for _, p := range products {
		list.StockCostValue = list.StockCostValue.Add(p.StockCostValue())
		list.StockSaleValue = list.StockSaleValue.Add(p.StockSaleValue())
	}

	return list, nil
}

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*domain.Product, error) {
	product, err := buildProduct(req)
	if err != nil {
		return nil, err
	}

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		id, err := s.repo.Insert(ctx, tx, product)
		if err != nil {
			return err
		}
		product.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int64("productId", product.ID), zap.String("name", product.Name))
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req dto.ProductRequest) (*domain.Product, error) {
	product, err := buildProduct(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.repo.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Int64("productId", id))
	return &product, nil
}

// Delete refuses products still referenced by stock entries or sales. When
// the last product goes, the id sequence is reset on a best-effort basis.
func (s *ProductService) Delete(ctx context.Context, id int64) (*dto.DeleteResult, error) {
	var isLast bool

	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.repo.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		refs, err := s.repo.CountReferences(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperrors.NewValidationError("product has stock entries or sales; delete them first", apperrors.ValidationDetail{
				Field:   "id",
				Message: "product is referenced by stock entries or sales",
			})
		}

		total, err := s.repo.Count(ctx, tx)
		if err != nil {
			return err
		}
		isLast = total == 1

		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product deleted", zap.Int64("productId", id), zap.Bool("wasLast", isLast))

	result := &dto.DeleteResult{}
	if isLast {
		if err := s.repo.ResetSequence(ctx); err != nil {
			ie := apperrors.NewIntegrityError("product deleted, but resetting the id sequence failed", err)
			s.logger.Warn("product id sequence reset failed", zap.Int64("productId", id), zap.Error(ie))
			result.Warning = ie.Error()
		}
	}

	return result, nil
}

func buildProduct(req dto.ProductRequest) (domain.Product, error) {
	var details []apperrors.ValidationDetail

	name := strings.TrimSpace(req.Name)
	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}

	productType := strings.TrimSpace(req.Type)
	if productType == "" {
		productType = domain.DefaultProductType
	}

	salePrice := requireNonNegative(req.SalePrice, "salePrice", &details)
	cost := requireNonNegative(req.Cost, "cost", &details)

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	if len(details) > 0 {
		return domain.Product{}, apperrors.NewValidationError("validation failed", details...)
	}

	return domain.Product{
		Name:      name,
		Type:      productType,
		SalePrice: salePrice,
		Cost:      cost,
		Stock:     stock,
	}, nil
}

func requireNonNegative(v *decimal.Decimal, field string, details *[]apperrors.ValidationDetail) decimal.Decimal {
	if v == nil {
		*details = append(*details, apperrors.ValidationDetail{Field: field, Message: field + " is required"})
		return decimal.Zero
	}
	if v.IsNegative() {
		*details = append(*details, apperrors.ValidationDetail{Field: field, Message: field + " must be non-negative"})
		return decimal.Zero
	}
	return v.Round(2)
}
