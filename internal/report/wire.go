package report

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"smartfinance/internal/report/controller"
	"smartfinance/internal/report/repository"
	"smartfinance/internal/report/service"
)

func NewModule(db *sqlx.DB, restock service.RestockSource, cash service.BalanceSource, logger *zap.Logger) *controller.ReportController {
	svc := service.NewReportService(repository.NewSQLRepository(db), restock, cash, logger)
	return controller.NewReportController(svc, logger)
}
