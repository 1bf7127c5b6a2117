package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withWorkdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	withWorkdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.TxTimeout)
	assert.Equal(t, 3, cfg.Database.MaxRetryAttempts)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "Minha Loja", cfg.Store.Name)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	withWorkdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  host: db.internal
  port: 5432
store:
  name: Loja do Arquivo
`), 0o600))

	t.Setenv("DB_HOST", "db.env")
	t.Setenv("NOME_LOJA", "Loja do Ambiente")
	t.Setenv("APP_PASSWORD", "segredo")
	t.Setenv("DB_TX_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.env", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "Loja do Ambiente", cfg.Store.Name)
	assert.Equal(t, "segredo", cfg.Auth.Password)
	assert.Equal(t, 2*time.Second, cfg.Database.TxTimeout)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	withWorkdir(t, dir)

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	withWorkdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEL_LOJA=11 99999-0000\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TEL_LOJA") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "11 99999-0000", cfg.Store.Phone)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite", MaxRetryAttempts: 3},
			Auth: AuthConfig{
				Username: "admin",
				Password: "smarttym2023",
				Secret:   "0123456789abcdef0123456789abcdef",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "not supported"},
		{name: "short secret", mutate: func(c *Config) { c.Auth.Secret = "short" }, wantErr: "SECRET_KEY"},
		{name: "blank username", mutate: func(c *Config) { c.Auth.Username = "  " }, wantErr: "APP_USERNAME"},
		{name: "missing password", mutate: func(c *Config) { c.Auth.Password = "" }, wantErr: "APP_PASSWORD"},
		{name: "no attempts", mutate: func(c *Config) { c.Database.MaxRetryAttempts = 0 }, wantErr: "max_retry_attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
