package services

import (
	"context"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
	"github.com/vendmach/vending_machine_api/internal/dto"
)

// DepositSvcFacade defines the deposit ledger operations.
type DepositSvcFacade interface {
	// CreateDeposit creates a new deposit for a buyer from a coin stack.
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, userID string) (*domain.Deposit, error)

	// GetCurrentDeposit resolves the user's unutilized deposit.
	GetCurrentDeposit(ctx context.Context, userID string) (*domain.Deposit, error)

	// ResetDeposit removes the user's unutilized deposit.
	ResetDeposit(ctx context.Context, userID string) (*domain.Deposit, error)
}
