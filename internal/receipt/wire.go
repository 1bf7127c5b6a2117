package receipt

import (
	"go.uber.org/zap"

	"smartfinance/internal/config"
	"smartfinance/internal/receipt/controller"
)

func NewModule(sales SaleSource, orders ServiceOrderSource, cfg *config.Config, logger *zap.Logger) *controller.ReceiptController {
	svc := NewService(sales, orders, NewRenderer(cfg.Store), NewPrinter(cfg.Printer), logger)
	return controller.NewReceiptController(svc, logger)
}
