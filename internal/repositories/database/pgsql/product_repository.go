package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	"github.com/zahintraders/poultry_trading_app/internal/models"
	"github.com/zahintraders/poultry_trading_app/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (product_id, name, sku, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.SKU,
		m.Price,
		m.Quantity,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, sku, price, quantity, created_at, updated_at
		FROM products
		WHERE product_id = $1;
	`
	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Price,
		&m.Quantity,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	query := `
		SELECT product_id, name, sku, price, quantity, created_at, updated_at
		FROM products
	`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR sku ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var m models.Product
		if err := rows.Scan(
			&m.ProductID,
			&m.Name,
			&m.SKU,
			&m.Price,
			&m.Quantity,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// UpdateProduct persists catalog fields only. Quantity moves through AdjustStock
// or the sale write path so every change leaves a transaction behind.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $2, sku = $3, price = $4, updated_at = $5
		WHERE product_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.SKU,
		m.Price,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update product %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed quantity delta and appends the stock
// transaction in one database transaction. The decrement branch is guarded in
// SQL so concurrent adjustments can never take the quantity below zero.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, txn domain.Transaction) (*domain.Product, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var m models.Product
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = $3
		WHERE product_id = $1 AND quantity + $2 >= 0
		RETURNING product_id, name, sku, price, quantity, created_at, updated_at;
	`
	err = tx.QueryRow(ctx, query, productID, delta, txn.CreatedAt).Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Price,
		&m.Quantity,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the product is missing or the guard rejected the delta.
			if _, findErr := r.FindProductByID(ctx, productID); findErr != nil {
				return nil, findErr
			}
			return nil, apperrors.ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}

	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}
