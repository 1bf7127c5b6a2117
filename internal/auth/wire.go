package auth

import (
	"go.uber.org/zap"

	"smartfinance/internal/config"
)

// NewManagerFromConfig builds the session manager for the configured account.
func NewManagerFromConfig(cfg config.AuthConfig, revoked RevocationStore, logger *zap.Logger) (*Manager, error) {
	creds, err := NewFixedCredentials(cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}
	logger.Info("auth configured", zap.String("username", cfg.Username), zap.Duration("tokenTTL", cfg.TokenTTL))
	return NewManager(creds, cfg.Secret, cfg.TokenTTL, revoked), nil
}
