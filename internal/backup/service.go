package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartfinance/internal/config"
	apperrors "smartfinance/internal/errors"
)

const (
	backupPrefix   = "smart_finance_backup_"
	snapshotPrefix = "smart_finance_pre_restore_"
	stampLayout    = "20060102150405"
)

type Service struct {
	runner Runner
	tools  toolset
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(runner Runner, db config.DatabaseConfig, dir string, logger *zap.Logger) (*Service, error) {
	tools, err := newToolset(db)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return &Service{
		runner: runner,
		tools:  tools,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Backup dumps the database and returns the path of the .sql file. The
// caller owns the file.
func (s *Service) Backup(ctx context.Context) (string, error) {
	return s.dump(ctx, backupPrefix)
}

// Restore replaces the database with the uploaded dump. A snapshot of the
// current data is taken first and re-applied if the load fails.
func (s *Service) Restore(ctx context.Context, filename string, upload io.Reader) (string, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".sql") {
		return "", apperrors.NewValidationError("invalid backup file", apperrors.ValidationDetail{
			Field:   "backup_file",
			Message: "only .sql files can be restored",
		})
	}
	if s.tools.restore("") == nil {
		return "", apperrors.NewValidationError("restore is not supported for this database driver")
	}

	uploaded, err := s.saveUpload(upload)
	if err != nil {
		return "", err
	}
	defer os.Remove(uploaded)

	snapshot, err := s.dump(ctx, snapshotPrefix)
	if err != nil {
		return "", fmt.Errorf("taking pre-restore snapshot: %w", err)
	}
	s.logger.Info("pre-restore snapshot written", zap.String("snapshot", snapshot))

	if err := s.run(ctx, s.tools.restore(uploaded)); err != nil {
		s.logger.Error("restore failed, re-applying snapshot", zap.String("snapshot", snapshot), zap.Error(err))
		if rerr := s.run(ctx, s.tools.restore(snapshot)); rerr != nil {
			s.logger.Error("re-applying snapshot failed", zap.String("snapshot", snapshot), zap.Error(rerr))
		}
		return snapshot, fmt.Errorf("restore failed, snapshot kept at %s: %w", snapshot, err)
	}

	s.logger.Info("database restored", zap.String("file", filename), zap.String("snapshot", snapshot))
	return snapshot, nil
}

func (s *Service) dump(ctx context.Context, prefix string) (string, error) {
	path := filepath.Join(s.dir, prefix+s.now().Format(stampLayout)+".sql")

	if err := s.run(ctx, s.tools.dump(path)); err != nil {
		os.Remove(path)
		return "", err
	}

	s.logger.Info("database dumped", zap.String("path", path))
	return path, nil
}

func (s *Service) run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		s.logger.Debug("running database tool", zap.String("tool", cmd.Name))
		if err := s.runner.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) saveUpload(upload io.Reader) (string, error) {
	f, err := os.CreateTemp(s.dir, "smart_finance_upload_*.sql")
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("saving upload: %w", err)
	}
	return f.Name(), nil
}
