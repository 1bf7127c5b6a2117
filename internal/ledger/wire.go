package ledger

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"smartfinance/internal/ledger/controller"
	"smartfinance/internal/ledger/repository"
	"smartfinance/internal/ledger/service"
)

type Module struct {
	Controller   *controller.CashController
	Synchronizer *service.Synchronizer
	// Repository also answers the lifetime balance for reports.
	Repository *repository.SQLRepository
}

func NewModule(db *sqlx.DB, runner service.TxRunner, logger *zap.Logger) *Module {
	repo := repository.NewSQLRepository(db)
	cashbook := service.NewCashbookService(runner, repo, logger)

	return &Module{
		Controller:   controller.NewCashController(cashbook, logger),
		Synchronizer: service.NewSynchronizer(repo, logger),
		Repository:   repo,
	}
}
