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

type PgxBuyerRepository struct {
	BaseRepository
}

func newPgxBuyerRepository(pool *pgxpool.Pool) portsrepo.BuyerRepositoryFacade {
	return &PgxBuyerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BuyerRepositoryFacade = (*PgxBuyerRepository)(nil)

func (r *PgxBuyerRepository) SaveBuyer(ctx context.Context, buyer domain.WholesaleBuyer) error {
	m := mapping.ToModelBuyer(buyer)
	query := `
		INSERT INTO wholesale_buyers (buyer_id, name, business_name, phone, address, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BuyerID,
		m.Name,
		m.BusinessName,
		m.Phone,
		m.Address,
		m.Balance,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save buyer: %w", err)
	}
	return nil
}

func (r *PgxBuyerRepository) FindBuyerByID(ctx context.Context, buyerID string) (*domain.WholesaleBuyer, error) {
	query := `
		SELECT buyer_id, name, business_name, phone, address, balance, created_at, updated_at
		FROM wholesale_buyers
		WHERE buyer_id = $1;
	`
	var m models.WholesaleBuyer
	err := r.Pool.QueryRow(ctx, query, buyerID).Scan(
		&m.BuyerID,
		&m.Name,
		&m.BusinessName,
		&m.Phone,
		&m.Address,
		&m.Balance,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find buyer by ID %s: %w", buyerID, err)
	}

	buyer := mapping.ToDomainBuyer(m)
	return &buyer, nil
}

func (r *PgxBuyerRepository) ListBuyers(ctx context.Context, search string) ([]domain.WholesaleBuyer, error) {
	query := `
		SELECT buyer_id, name, business_name, phone, address, balance, created_at, updated_at
		FROM wholesale_buyers
	`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR business_name ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query buyers: %w", err)
	}
	defer rows.Close()

	buyers := []domain.WholesaleBuyer{}
	for rows.Next() {
		var m models.WholesaleBuyer
		if err := rows.Scan(
			&m.BuyerID,
			&m.Name,
			&m.BusinessName,
			&m.Phone,
			&m.Address,
			&m.Balance,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan buyer row: %w", err)
		}
		buyers = append(buyers, mapping.ToDomainBuyer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buyer rows: %w", err)
	}

	return buyers, nil
}

// UpdateBuyer persists profile fields only. Balance moves exclusively through
// the ledger write path.
func (r *PgxBuyerRepository) UpdateBuyer(ctx context.Context, buyer domain.WholesaleBuyer) error {
	m := mapping.ToModelBuyer(buyer)
	query := `
		UPDATE wholesale_buyers
		SET name = $2, business_name = $3, phone = $4, address = $5, updated_at = $6
		WHERE buyer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BuyerID,
		m.Name,
		m.BusinessName,
		m.Phone,
		m.Address,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update buyer %s: %w", m.BuyerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBuyerRepository) DeleteBuyer(ctx context.Context, buyerID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM wholesale_buyers WHERE buyer_id = $1;`, buyerID)
	if err != nil {
		return fmt.Errorf("failed to delete buyer %s: %w", buyerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
