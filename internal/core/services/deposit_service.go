package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// depositService manages the buyer deposit ledger.
type depositService struct {
	depositRepo portsrepo.DepositRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewDepositService creates a new deposit service.
func NewDepositService(depositRepo portsrepo.DepositRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.DepositSvcFacade {
	return &depositService{depositRepo: depositRepo, userRepo: userRepo}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

// CreateDeposit creates a buyer's deposit from a coin stack. The stack is
// validated and normalized, the amount derived from it, and at most one
// unutilized deposit may exist per buyer.
func (s *depositService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, userID string) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if !user.IsBuyer() {
		return nil, fmt.Errorf("only buyers can deposit coins: %w", apperrors.ErrForbidden)
	}

	coins, err := req.ToCoinStack().Normalize()
	if err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, fmt.Errorf("%w: deposit must contain at least one coin", apperrors.ErrValidation)
	}

	if _, err := s.depositRepo.FindUnutilizedDepositByUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("an unutilized deposit already exists for user %s: %w", user.Username, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing deposit: %w", err)
	}

	now := time.Now().UTC()
	deposit := domain.Deposit{
		DepositID: uuid.NewString(),
		UserID:    userID,
		Amount:    domain.AmountFromCoins(coins),
		Coins:     coins,
		Utilized:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.depositRepo.SaveDeposit(ctx, deposit); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save deposit", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Deposit created",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("amount", deposit.Amount.StringFixed(2)))
	return &deposit, nil
}

// GetCurrentDeposit resolves the user's live deposit, mapping a repository miss
// to the settlement taxonomy.
func (s *depositService) GetCurrentDeposit(ctx context.Context, userID string) (*domain.Deposit, error) {
	deposit, err := s.depositRepo.FindUnutilizedDepositByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user %s has no unutilized deposit: %w", userID, apperrors.ErrNoActiveDeposit)
		}
		return nil, fmt.Errorf("failed to resolve current deposit: %w", err)
	}
	return deposit, nil
}

// ResetDeposit removes the user's live deposit, returning its final state.
func (s *depositService) ResetDeposit(ctx context.Context, userID string) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.GetCurrentDeposit(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.depositRepo.DeleteUnutilizedDeposit(ctx, deposit.DepositID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Raced against a purchase that just consumed it.
			return nil, fmt.Errorf("deposit was consumed concurrently: %w", apperrors.ErrConcurrencyConflict)
		}
		logger.Error("Failed to delete deposit", slog.String("error", err.Error()), slog.String("deposit_id", deposit.DepositID))
		return nil, err
	}

	logger.Info("Deposit reset", slog.String("deposit_id", deposit.DepositID))
	return deposit, nil
}
