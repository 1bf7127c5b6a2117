package backup

import (
	"go.uber.org/zap"

	"smartfinance/internal/backup/controller"
	"smartfinance/internal/config"
)

func NewModule(cfg *config.Config, logger *zap.Logger) (*controller.BackupController, error) {
	svc, err := NewService(ExecRunner{}, cfg.Database, cfg.Backup.Dir, logger)
	if err != nil {
		return nil, err
	}
	return controller.NewBackupController(svc, logger), nil
}
