package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/respond"
)

const maxUploadBytes = 256 << 20

type BackupService interface {
	Backup(ctx context.Context) (string, error)
	Restore(ctx context.Context, filename string, upload io.Reader) (string, error)
}

type BackupController struct {
	service BackupService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewBackupController(service BackupService, logger *zap.Logger) *BackupController {
	return &BackupController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

// Download streams a fresh dump as an attachment and removes it afterwards.
func (c *BackupController) Download(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	path, err := c.service.Backup(r.Context())
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		c.out.Error(w, traceID, fmt.Errorf("opening dump: %w", err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/sql")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		c.logger.Error("failed to stream backup", zap.String("traceId", traceID), zap.Error(err))
	}
}

func (c *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("backup_file")
	if err != nil {
		message := "backup_file is required"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			message = "backup_file is too large"
		}
		c.out.Error(w, traceID, apperrors.NewValidationError("invalid upload", apperrors.ValidationDetail{
			Field:   "backup_file",
			Message: message,
		}))
		return
	}
	defer file.Close()

	c.logger.Info("restore requested",
		zap.String("traceId", traceID),
		zap.String("file", header.Filename),
		zap.Int64("size", header.Size),
	)

	snapshot, err := c.service.Restore(r.Context(), header.Filename, file)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.RestoreResponse{Restored: true, Snapshot: snapshot})
}
