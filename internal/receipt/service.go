package receipt

import (
	"context"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
)

type SaleSource interface {
	Get(ctx context.Context, id int64) (*domain.Sale, error)
}

type ServiceOrderSource interface {
	Get(ctx context.Context, id int64) (*domain.ServiceOrder, error)
}

type Service struct {
	sales    SaleSource
	orders   ServiceOrderSource
	renderer *Renderer
	printer  Printer
	logger   *zap.Logger
}

// NewService builds the receipt service. printer may be nil when no printer
// is configured.
func NewService(sales SaleSource, orders ServiceOrderSource, renderer *Renderer, printer Printer, logger *zap.Logger) *Service {
	return &Service{
		sales:    sales,
		orders:   orders,
		renderer: renderer,
		printer:  printer,
		logger:   logger,
	}
}

func (s *Service) SaleReceipt(ctx context.Context, id int64) (string, error) {
	sale, err := s.sales.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Sale(*sale)
}

func (s *Service) ServiceReceipt(ctx context.Context, id int64) (string, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.ServiceOrder(*order)
}

// PrintService sends the receipt of a finished order to the printer.
func (s *Service) PrintService(ctx context.Context, id int64) error {
	if s.printer == nil {
		return apperrors.NewValidationError("no receipt printer configured", apperrors.ValidationDetail{
			Field:   "printer",
			Message: "set PRINTER_ADDRESS or PRINTER_DEVICE",
		})
	}

	text, err := s.ServiceReceipt(ctx, id)
	if err != nil {
		return err
	}

	data, err := EncodeESCPOS(text)
	if err != nil {
		return err
	}

	if err := s.printer.Print(ctx, data); err != nil {
		return apperrors.NewExternalToolError("printer", "", err)
	}

	s.logger.Info("service receipt printed", zap.Int64("serviceOrderId", id), zap.Int("bytes", len(data)))
	return nil
}
