package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// PurchaseReader defines read operations for settled purchase lines.
type PurchaseReader interface {
	// HasPurchasesForProduct reports whether any purchase references the product.
	HasPurchasesForProduct(ctx context.Context, productID string) (bool, error)
}

// PurchaseWriter defines the settlement write path.
type PurchaseWriter interface {
	// SettlePurchase atomically persists one purchase row per input line (capturing
	// the supplied unit prices), decrements stock by the aggregated per-product
	// quantities flooring at zero, and marks the deposit utilized via test-and-set.
	// A concurrent update that would oversell a product or double-spend the deposit
	// fails the whole transaction with apperrors.ErrConcurrencyConflict.
	SettlePurchase(ctx context.Context, depositID string, lines []domain.PurchaseLine,
		unitPrices map[string]decimal.Decimal, quantitiesByProduct map[string]int64, settledBy string) ([]domain.Purchase, error)
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}

// PurchaseRepositoryWithTx extends PurchaseRepositoryFacade with transaction capabilities.
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
