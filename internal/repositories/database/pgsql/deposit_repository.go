package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	"github.com/vendmach/vending_machine_api/internal/models"
	"github.com/vendmach/vending_machine_api/internal/utils/mapping"
)

type PgxDepositRepository struct {
	BaseRepository
}

// NewDepositRepository creates a pgx-backed deposit repository.
func NewDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepositoryFacade {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

func (r *PgxDepositRepository) SaveDeposit(ctx context.Context, deposit domain.Deposit) error {
	modelDeposit := mapping.ToModelDeposit(deposit)
	query := `
        INSERT INTO deposits (deposit_id, user_id, amount, coins, is_utilized, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelDeposit.DepositID,
		modelDeposit.UserID,
		modelDeposit.Amount,
		modelDeposit.Coins,
		modelDeposit.Utilized,
		modelDeposit.CreatedAt,
		modelDeposit.CreatedBy,
		modelDeposit.LastUpdatedAt,
		modelDeposit.LastUpdatedBy,
	)
	if err != nil {
		// The partial unique index on (user_id) WHERE NOT is_utilized enforces the
		// one-live-deposit-per-buyer invariant even under concurrent creates.
		if isUniqueViolation(err) {
			return fmt.Errorf("an unutilized deposit already exists for user %s: %w", deposit.UserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save deposit: %w", err)
	}
	return nil
}

func (r *PgxDepositRepository) FindUnutilizedDepositByUser(ctx context.Context, userID string) (*domain.Deposit, error) {
	query := `
		SELECT deposit_id, user_id, amount, coins, is_utilized, created_at, created_by, last_updated_at, last_updated_by
		FROM deposits
		WHERE user_id = $1 AND is_utilized = FALSE;
	`
	var m models.Deposit
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.DepositID,
		&m.UserID,
		&m.Amount,
		&m.Coins,
		&m.Utilized,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unutilized deposit for user %s: %w", userID, err)
	}

	domainDeposit := mapping.ToDomainDeposit(m)
	return &domainDeposit, nil
}

func (r *PgxDepositRepository) DeleteUnutilizedDeposit(ctx context.Context, depositID string) error {
	query := `
        DELETE FROM deposits
        WHERE deposit_id = $1 AND is_utilized = FALSE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, depositID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit %s: %w", depositID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deposit not found or already utilized: %w", apperrors.ErrNotFound)
	}
	return nil
}
