package repositories

import (
	"context"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// DepositReader defines read operations for deposit data.
type DepositReader interface {
	// FindUnutilizedDepositByUser retrieves the user's current live deposit.
	// Returns apperrors.ErrNotFound when the user has none.
	FindUnutilizedDepositByUser(ctx context.Context, userID string) (*domain.Deposit, error)
}

// DepositWriter defines write operations for deposit data.
type DepositWriter interface {
	// SaveDeposit persists a new deposit. A partial unique index guarantees at
	// most one unutilized deposit per user; a violation surfaces as
	// apperrors.ErrDuplicate.
	SaveDeposit(ctx context.Context, deposit domain.Deposit) error

	// DeleteUnutilizedDeposit removes the deposit if it is still unutilized.
	// Returns apperrors.ErrNotFound when no row matched.
	DeleteUnutilizedDeposit(ctx context.Context, depositID string) error
}

// DepositRepositoryFacade combines all deposit-related repository interfaces.
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}
