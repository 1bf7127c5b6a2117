package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/infrastructure/database"
)

const cashEntryColumns = `id, created_at, kind, amount, description, origin_id, origin_type`

type cashEntryRow struct {
	ID          int64           `db:"id"`
	CreatedAt   time.Time       `db:"created_at"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OriginID    sql.NullInt64   `db:"origin_id"`
	OriginType  sql.NullString  `db:"origin_type"`
}

func (row cashEntryRow) toDomain() (domain.CashEntry, error) {
	kind, err := domain.ParseCashKind(row.Kind)
	if err != nil {
		return domain.CashEntry{}, fmt.Errorf("cash entry %d: %w", row.ID, err)
	}

	var originID *int64
	if row.OriginID.Valid {
		originID = &row.OriginID.Int64
	}
	origin, err := domain.ParseOrigin(row.OriginType.String, originID)
	if err != nil {
		return domain.CashEntry{}, fmt.Errorf("cash entry %d: %w", row.ID, err)
	}

	return domain.CashEntry{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt,
		Kind:        kind,
		Amount:      row.Amount,
		Description: row.Description,
		Origin:      origin,
	}, nil
}

func originArgs(o domain.Origin) (interface{}, interface{}) {
	if o.IsNone() {
		return nil, nil
	}
	return o.ID, string(o.Type)
}

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.CashEntry, error) {
	query := `SELECT ` + cashEntryColumns + ` FROM cash_entries WHERE id = ?` + database.DialectOf(tx).ForUpdate()

	var row cashEntryRow
	err := tx.GetContext(ctx, &row, tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cash entry with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying cash entry by id: %w", err)
	}

	entry, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByOrigin returns the entry mirroring origin, or nil when there is none.
func (r *SQLRepository) FindByOrigin(ctx context.Context, tx *sqlx.Tx, origin domain.Origin) (*domain.CashEntry, error) {
	query := `SELECT ` + cashEntryColumns + ` FROM cash_entries WHERE origin_type = ? AND origin_id = ?` + database.DialectOf(tx).ForUpdate()

	var row cashEntryRow
	err := tx.GetContext(ctx, &row, tx.Rebind(query), string(origin.Type), origin.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cash entry by origin: %w", err)
	}

	entry, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]domain.CashEntry, error) {
	query := `SELECT ` + cashEntryColumns + ` FROM cash_entries ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	var rows []cashEntryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing cash entries: %w", err)
	}

	entries := make([]domain.CashEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sqlx.Tx, e domain.CashEntry) (int64, error) {
	query := `INSERT INTO cash_entries (created_at, kind, amount, description, origin_id, origin_type)
		VALUES (?, ?, ?, ?, ?, ?)`

	originID, originType := originArgs(e.Origin)
	id, err := database.InsertReturningID(ctx, tx, query,
		e.CreatedAt.UTC(), string(e.Kind), e.Amount, e.Description, originID, originType)
	if err != nil {
		return 0, fmt.Errorf("inserting cash entry: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) UpdateAmount(ctx context.Context, tx *sqlx.Tx, id int64, amount decimal.Decimal, description string) error {
	query := `UPDATE cash_entries SET amount = ?, description = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query), amount, description, id)
	if err != nil {
		return fmt.Errorf("updating cash entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("cash entry with id %d not found", id))
	}

	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM cash_entries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting cash entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("cash entry with id %d not found", id))
	}

	return nil
}

// DeleteByOrigin removes the mirror of origin and reports how many rows went.
func (r *SQLRepository) DeleteByOrigin(ctx context.Context, tx *sqlx.Tx, origin domain.Origin) (int64, error) {
	query := `DELETE FROM cash_entries WHERE origin_type = ? AND origin_id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query), string(origin.Type), origin.ID)
	if err != nil {
		return 0, fmt.Errorf("deleting cash entry by origin: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Balance is the lifetime sum of inflows minus outflows.
func (r *SQLRepository) Balance(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0)
		FROM cash_entries`

	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, r.db.Rebind(query), string(domain.CashInflow), string(domain.CashOutflow))
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing cash balance: %w", err)
	}

	return balance.Round(2), nil
}
