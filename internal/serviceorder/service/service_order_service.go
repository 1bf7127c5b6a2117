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
	FindByID(ctx context.Context, id int64) (*domain.ServiceOrder, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.ServiceOrder, error)
	List(ctx context.Context, limit, offset int) ([]domain.ServiceOrder, error)
	Insert(ctx context.Context, tx *sqlx.Tx, o domain.ServiceOrder) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, o domain.ServiceOrder) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type LedgerSync interface {
	SyncServiceOrder(ctx context.Context, tx *sqlx.Tx, order domain.ServiceOrder) error
	RemoveServiceOrder(ctx context.Context, tx *sqlx.Tx, orderID int64) error
}

type ServiceOrderService struct {
	runner TxRunner
	repo   Repository
	ledger LedgerSync
	logger *zap.Logger
	now    func() time.Time
}

func NewServiceOrderService(runner TxRunner, repo Repository, ledger LedgerSync, logger *zap.Logger) *ServiceOrderService {
	return &ServiceOrderService{
		runner: runner,
		repo:   repo,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ServiceOrderService) Get(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceOrderService) List(ctx context.Context, limit, offset int) ([]domain.ServiceOrder, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *ServiceOrderService) Create(ctx context.Context, req dto.ServiceOrderRequest) (*domain.ServiceOrder, error) {
	order, err := buildOrder(req)
	if err != nil {
		return nil, err
	}
	order.CreatedAt = s.now().UTC()

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		id, err := s.repo.Insert(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = id

		return s.ledger.SyncServiceOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service order created",
		zap.Int64("serviceOrderId", order.ID),
		zap.String("type", order.Type),
		zap.String("status", order.Status),
	)
	return &order, nil
}

// Update replaces every editable field. Finishing a cash order creates its
// cash mirror; reopening it or switching payment removes the mirror.
func (s *ServiceOrderService) Update(ctx context.Context, id int64, req dto.ServiceOrderRequest) (*domain.ServiceOrder, error) {
	order, err := buildOrder(req)
	if err != nil {
		return nil, err
	}
	order.ID = id

	err = s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		order.CreatedAt = current.CreatedAt

		if err := s.repo.Update(ctx, tx, order); err != nil {
			return err
		}

		return s.ledger.SyncServiceOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service order updated", zap.Int64("serviceOrderId", id), zap.String("status", order.Status))
	return &order, nil
}

func (s *ServiceOrderService) Delete(ctx context.Context, id int64) error {
	err := s.runner.Run(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.repo.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		if err := s.ledger.RemoveServiceOrder(ctx, tx, id); err != nil {
			return err
		}

		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("service order deleted", zap.Int64("serviceOrderId", id))
	return nil
}

func buildOrder(req dto.ServiceOrderRequest) (domain.ServiceOrder, error) {
	var details []apperrors.ValidationDetail

	order := domain.ServiceOrder{
		Description:   strings.TrimSpace(req.Description),
		Device:        strings.TrimSpace(req.Device),
		Type:          strings.TrimSpace(req.Type),
		Status:        strings.TrimSpace(req.Status),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Customer:      strings.TrimSpace(req.Customer),
	}

	if order.Type == "" {
		order.Type = domain.ServiceTypeMaintenance
	}
	if order.Status == "" {
		order.Status = domain.ServiceStatusStarted
	}
	if !domain.IsValidServiceStatus(order.Status) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be " + domain.ServiceStatusStarted + " or " + domain.ServiceStatusFinished,
		})
	}

	order.SetResale(req.Resale)
	if strings.TrimSpace(strings.TrimPrefix(order.Description, domain.ResaleTag)) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is required"})
	}

	order.PartsCost = optionalNonNegative(req.PartsCost, "partsCost", &details)
	order.LaborCost = optionalNonNegative(req.LaborCost, "laborCost", &details)
	order.DevicePrice = optionalNonNegative(req.DevicePrice, "devicePrice", &details)

	if len(details) > 0 {
		return domain.ServiceOrder{}, apperrors.NewValidationError("validation failed", details...)
	}

	order.NormalizeCosts()
	return order, nil
}

func optionalNonNegative(v *decimal.Decimal, field string, details *[]apperrors.ValidationDetail) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	if v.IsNegative() {
		*details = append(*details, apperrors.ValidationDetail{Field: field, Message: field + " must be non-negative"})
		return decimal.Zero
	}
	return v.Round(2)
}
