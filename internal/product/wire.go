package product

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"smartfinance/internal/product/controller"
	"smartfinance/internal/product/repository"
	"smartfinance/internal/product/service"
)

func NewModule(db *sqlx.DB, runner service.TxRunner, logger *zap.Logger) *controller.ProductController {
	repo := repository.NewSQLRepository(db)
	svc := service.NewProductService(runner, repo, logger)
	return controller.NewProductController(svc, logger)
}
