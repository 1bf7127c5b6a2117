package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/infrastructure/database"
)

const productColumns = `id, name, type, sale_price, cost, stock`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return findByID(ctx, r.db, id, "")
}

func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Product, error) {
	return findByID(ctx, tx, id, database.DialectOf(tx).ForUpdate())
}

func findByID(ctx context.Context, q sqlx.ExtContext, id int64, lock string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?` + lock

	var p domain.Product
	err := sqlx.GetContext(ctx, q, &p, q.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *SQLRepository) List(ctx context.Context, filter dto.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []interface{}
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return products, nil
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sqlx.Tx, p domain.Product) (int64, error) {
	query := `INSERT INTO products (name, type, sale_price, cost, stock) VALUES (?, ?, ?, ?, ?)`

	id, err := database.InsertReturningID(ctx, tx, query, p.Name, p.Type, p.SalePrice, p.Cost, p.Stock)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, tx *sqlx.Tx, p domain.Product) error {
	query := `UPDATE products SET name = ?, type = ?, sale_price = ?, cost = ?, stock = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query), p.Name, p.Type, p.SalePrice, p.Cost, p.Stock, p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return requireRow(result, p.ID)
}

// AdjustStock adds delta (possibly negative) to the product's stock.
func (r *SQLRepository) AdjustStock(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	query := `UPDATE products SET stock = stock + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, tx.Rebind(query), delta, id)
	if err != nil {
		return fmt.Errorf("adjusting product stock: %w", err)
	}

	return requireRow(result, id)
}

func (r *SQLRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return requireRow(result, id)
}

// CountReferences counts the stock entries and sales pointing at the product.
func (r *SQLRepository) CountReferences(ctx context.Context, tx *sqlx.Tx, id int64) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM stock_entries WHERE product_id = ?) +
			(SELECT COUNT(*) FROM sales WHERE product_id = ?)`

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(query), id, id); err != nil {
		return 0, fmt.Errorf("counting product references: %w", err)
	}

	return count, nil
}

func (r *SQLRepository) Count(ctx context.Context, tx *sqlx.Tx) (int, error) {
	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return count, nil
}

// ResetSequence restarts product ids at 1. It runs on the pool, after the
// delete has committed.
func (r *SQLRepository) ResetSequence(ctx context.Context) error {
	stmt := database.DialectOf(r.db).ResetSequenceStatement("products")
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("resetting product id sequence: %w", err)
	}

	return nil
}

func requireRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
