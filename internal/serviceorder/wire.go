package serviceorder

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"smartfinance/internal/serviceorder/controller"
	"smartfinance/internal/serviceorder/repository"
	"smartfinance/internal/serviceorder/service"
)

type Module struct {
	Controller *controller.ServiceOrderController
	// Service also feeds service receipts.
	Service *service.ServiceOrderService
}

func NewModule(db *sqlx.DB, runner service.TxRunner, ledger service.LedgerSync, logger *zap.Logger) *Module {
	svc := service.NewServiceOrderService(runner, repository.NewSQLRepository(db), ledger, logger)

	return &Module{
		Controller: controller.NewServiceOrderController(svc, logger),
		Service:    svc,
	}
}
