package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
)

type mockBackupService struct {
	BackupFunc  func(ctx context.Context) (string, error)
	RestoreFunc func(ctx context.Context, filename string, upload io.Reader) (string, error)
}

func (m *mockBackupService) Backup(ctx context.Context) (string, error) {
	return m.BackupFunc(ctx)
}

func (m *mockBackupService) Restore(ctx context.Context, filename string, upload io.Reader) (string, error) {
	return m.RestoreFunc(ctx, filename, upload)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestBackupController_Download(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smart_finance_backup_20250309140507.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE products ();\n"), 0o600))

	ctrl := NewBackupController(&mockBackupService{
		BackupFunc: func(ctx context.Context) (string, error) { return path, nil },
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Download(rec, httptest.NewRequest(http.MethodGet, "/api/backup", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="smart_finance_backup_20250309140507.sql"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "CREATE TABLE products ();\n", rec.Body.String())
	assert.NoFileExists(t, path)
}

func TestBackupController_DownloadToolFailure(t *testing.T) {
	ctrl := NewBackupController(&mockBackupService{
		BackupFunc: func(ctx context.Context) (string, error) {
			return "", apperrors.NewExternalToolError("pg_dump", "could not connect", nil)
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Download(rec, httptest.NewRequest(http.MethodGet, "/api/backup", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not connect")
}

func TestBackupController_Restore(t *testing.T) {
	t.Run("restores the uploaded file", func(t *testing.T) {
		var gotName, gotBody string
		ctrl := NewBackupController(&mockBackupService{
			RestoreFunc: func(ctx context.Context, filename string, upload io.Reader) (string, error) {
				data, err := io.ReadAll(upload)
				require.NoError(t, err)
				gotName, gotBody = filename, string(data)
				return "/backups/smart_finance_pre_restore_1.sql", nil
			},
		}, zap.NewNop())

		body, contentType := multipartBody(t, "backup_file", "dump.sql", "SELECT 1;")
		req := httptest.NewRequest(http.MethodPost, "/api/restore", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Restore(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dump.sql", gotName)
		assert.Equal(t, "SELECT 1;", gotBody)

		var resp dto.RestoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Restored)
		assert.Equal(t, "/backups/smart_finance_pre_restore_1.sql", resp.Snapshot)
	})

	t.Run("missing file field", func(t *testing.T) {
		ctrl := NewBackupController(&mockBackupService{}, zap.NewNop())

		body, contentType := multipartBody(t, "", "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/restore", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Restore(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "backup_file is required")
	})

	t.Run("service validation error", func(t *testing.T) {
		ctrl := NewBackupController(&mockBackupService{
			RestoreFunc: func(ctx context.Context, filename string, upload io.Reader) (string, error) {
				return "", apperrors.NewValidationError("invalid backup file")
			},
		}, zap.NewNop())

		body, contentType := multipartBody(t, "backup_file", "dump.txt", "x")
		req := httptest.NewRequest(http.MethodPost, "/api/restore", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Restore(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
