package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"smartfinance/internal/domain"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/infrastructure/database"
)

const selectStockEntry = `
	SELECT e.id, e.created_at, e.product_id, COALESCE(p.name, '') AS product_name,
		e.quantity, e.unit_cost, e.total_cost
	FROM stock_entries e
	LEFT JOIN products p ON p.id = e.product_id`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.StockEntry, error) {
	var e domain.StockEntry
	err := r.db.GetContext(ctx, &e, r.db.Rebind(selectStockEntry+` WHERE e.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("stock entry with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock entry by id: %w", err)
	}

	return &e, nil
}

// FindByIDForUpdate loads the pre-update row inside tx. The product name is
// left empty.
func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.StockEntry, error) {
	query := `
		SELECT id, created_at, product_id, '' AS product_name, quantity, unit_cost, total_cost
		FROM stock_entries WHERE id = ?` + database.DialectOf(tx).ForUpdate()

	var e domain.StockEntry
	err := tx.GetContext(ctx, &e, tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("stock entry with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock entry by id: %w", err)
	}

	return &e, nil
}

// List returns entries newest first. A zero limit returns every row.
func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]domain.StockEntry, error) {
	query := selectStockEntry + ` ORDER BY e.created_at DESC, e.id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	entries := []domain.StockEntry{}
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing stock entries: %w", err)
	}

	return entries, nil
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sqlx.Tx, e domain.StockEntry) (int64, error) {
	query := `INSERT INTO stock_entries (created_at, product_id, quantity, unit_cost, total_cost) VALUES (?, ?, ?, ?, ?)`

	id, err := database.InsertReturningID(ctx, tx, query, e.CreatedAt, e.ProductID, e.Quantity, e.UnitCost, e.TotalCost)
	if err != nil {
		return 0, fmt.Errorf("inserting stock entry: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, tx *sqlx.Tx, e domain.StockEntry) error {
	query := `UPDATE stock_entries SET quantity = ?, unit_cost = ?, total_cost = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query), e.Quantity, e.UnitCost, e.TotalCost, e.ID)
	if err != nil {
		return fmt.Errorf("updating stock entry: %w", err)
	}

	return requireRow(result, e.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM stock_entries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting stock entry: %w", err)
	}

	return requireRow(result, id)
}

// SpendInScope sums total_cost of the entries created within scope.
func (r *SQLRepository) SpendInScope(ctx context.Context, scope domain.Scope) (decimal.Decimal, error) {
	where, args := database.DialectOf(r.db).ScopeFilter("created_at", scope)
	query := `SELECT COALESCE(SUM(total_cost), 0) FROM stock_entries` + where

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(query), args...); err != nil {
		return decimal.Zero, fmt.Errorf("summing restock spend: %w", err)
	}

	return total.Round(2), nil
}

func requireRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("stock entry with id %d not found", id))
	}

	return nil
}
