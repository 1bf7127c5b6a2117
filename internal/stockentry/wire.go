package stockentry

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	productrepo "smartfinance/internal/product/repository"
	"smartfinance/internal/stockentry/controller"
	"smartfinance/internal/stockentry/repository"
	"smartfinance/internal/stockentry/service"
)

type Module struct {
	Controller *controller.StockEntryController
	// Repository also answers restock spend for reports.
	Repository *repository.SQLRepository
}

func NewModule(db *sqlx.DB, runner service.TxRunner, logger *zap.Logger) *Module {
	repo := repository.NewSQLRepository(db)
	svc := service.NewStockEntryService(runner, repo, productrepo.NewSQLRepository(db), logger)

	return &Module{
		Controller: controller.NewStockEntryController(svc, logger),
		Repository: repo,
	}
}
