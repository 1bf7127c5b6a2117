package sale

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	productrepo "smartfinance/internal/product/repository"
	"smartfinance/internal/sale/controller"
	"smartfinance/internal/sale/repository"
	"smartfinance/internal/sale/service"
)

type Module struct {
	Controller *controller.SaleController
	// Service also feeds sale receipts.
	Service *service.SaleService
}

func NewModule(db *sqlx.DB, runner service.TxRunner, ledger service.LedgerSync, logger *zap.Logger) *Module {
	svc := service.NewSaleService(runner, repository.NewSQLRepository(db), productrepo.NewSQLRepository(db), ledger, logger)

	return &Module{
		Controller: controller.NewSaleController(svc, logger),
		Service:    svc,
	}
}
