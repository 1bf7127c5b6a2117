package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"smartfinance/internal/config"
	apperrors "smartfinance/internal/errors"
)

// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms), etc.
var backoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

type TxRunner struct {
	db               *sqlx.DB
	timeout          time.Duration
	maxRetryAttempts int
	logger           *zap.Logger
}

func NewTxRunner(db *sqlx.DB, cfg config.DatabaseConfig, logger *zap.Logger) *TxRunner {
	attempts := cfg.MaxRetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &TxRunner{
		db:               db,
		timeout:          cfg.TxTimeout,
		maxRetryAttempts: attempts,
		logger:           logger,
	}
}

// Run executes fn inside one transaction, retrying it when the store reports
// a deadlock or serialization failure. fn may therefore run more than once.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	for attempt := 1; attempt <= r.maxRetryAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return err
		}

		if attempt == r.maxRetryAttempts {
			break
		}

		base := backoffs[min(attempt, len(backoffs)-1)]
		// jitter: ±20% of backoff base
		wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
		r.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", r.maxRetryAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	txCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTxx(txCtx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsRetryable reports whether err is a transient lock conflict worth retrying.
func IsRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_BUSY
	}

	return false
}
