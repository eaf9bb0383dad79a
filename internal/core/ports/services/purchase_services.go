package services

import (
	"context"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// PurchaseSvcFacade defines the settlement operation.
type PurchaseSvcFacade interface {
	// Buy settles a purchase request against the buyer's current deposit and
	// returns the receipt with change. Either every effect commits or none does.
	Buy(ctx context.Context, userID string, purchase domain.PurchaseRequest) (*domain.PurchaseReceipt, error)
}
