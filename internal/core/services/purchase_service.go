package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// purchaseService is the settlement orchestrator: it validates a purchase
// request against catalog stock and the buyer's deposit, then hands the write
// path to the repository as one atomic group.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	productRepo  portsrepo.ProductRepositoryFacade
	depositRepo  portsrepo.DepositRepositoryFacade
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryWithTx, productRepo portsrepo.ProductRepositoryFacade,
	depositRepo portsrepo.DepositRepositoryFacade) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		depositRepo:  depositRepo,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// reconciliation is the validated outcome of a purchase request: what it costs,
// the unit price captured per product, and the aggregated quantity to deduct
// per product.
type reconciliation struct {
	total               decimal.Decimal
	unitPrices          map[string]decimal.Decimal
	quantitiesByProduct map[string]int64
}

// reconcile validates every purchase line against the active catalog and the
// available funds. Lines referencing the same product are aggregated before the
// stock check so a request cannot be approved for more units than exist across
// its lines; per-line totals and the echoed lines keep the original shape.
func (s *purchaseService) reconcile(ctx context.Context, purchase domain.PurchaseRequest, availableFunds decimal.Decimal) (*reconciliation, error) {
	if len(purchase.Lines) == 0 {
		return nil, fmt.Errorf("%w: purchase must contain at least one line", apperrors.ErrValidation)
	}

	// Distinct ids, one batch catalog lookup.
	distinctIDs := make([]string, 0, len(purchase.Lines))
	seen := make(map[string]struct{}, len(purchase.Lines))
	for _, line := range purchase.Lines {
		if _, ok := seen[line.ProductID]; !ok {
			seen[line.ProductID] = struct{}{}
			distinctIDs = append(distinctIDs, line.ProductID)
		}
	}

	products, err := s.productRepo.FindActiveProductsByIDs(ctx, distinctIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for purchase: %w", err)
	}
	for _, id := range distinctIDs {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("no active product with id %s: %w", id, apperrors.ErrProductNotFound)
		}
	}

	// Aggregate requested quantities per product, validating each line.
	quantities := make(map[string]int64, len(distinctIDs))
	for _, line := range purchase.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product %s, got %d: %w",
				line.ProductID, line.Quantity, apperrors.ErrInvalidQuantity)
		}
		quantities[line.ProductID] += line.Quantity
	}

	total := decimal.Zero
	unitPrices := make(map[string]decimal.Decimal, len(distinctIDs))
	for _, id := range distinctIDs {
		product := products[id]
		if requested := quantities[id]; requested > product.Quantity {
			return nil, fmt.Errorf("requested %d of product %s but only %d available: %w",
				requested, id, product.Quantity, apperrors.ErrInsufficientStock)
		}
		unitPrices[id] = product.Price
		total = total.Add(product.Price.Mul(decimal.NewFromInt(quantities[id])))
	}
	total = total.Round(2)

	if total.GreaterThan(availableFunds) {
		return nil, fmt.Errorf("deposited amount %s is less than purchase total %s: %w",
			availableFunds.StringFixed(2), total.StringFixed(2), apperrors.ErrInsufficientFunds)
	}

	return &reconciliation{
		total:               total,
		unitPrices:          unitPrices,
		quantitiesByProduct: quantities,
	}, nil
}

// Buy settles a purchase request against the buyer's current deposit. All
// validation precedes any persisted mutation; the repository commits line
// persistence, stock decrement and deposit utilization as one transaction, so
// a failure anywhere leaves every record untouched.
func (s *purchaseService) Buy(ctx context.Context, userID string, purchase domain.PurchaseRequest) (*domain.PurchaseReceipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.depositRepo.FindUnutilizedDepositByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user %s has no unutilized deposit: %w", userID, apperrors.ErrNoActiveDeposit)
		}
		return nil, fmt.Errorf("failed to resolve deposit: %w", err)
	}

	rec, err := s.reconcile(ctx, purchase, deposit.Amount)
	if err != nil {
		return nil, err
	}

	// Compute change up front: an unmakeable remainder must fail the purchase
	// before anything is persisted, not strand the buyer afterwards.
	remainingCents := deposit.Amount.Sub(rec.total).Shift(2).IntPart()
	change, err := domain.MakeChange(remainingCents)
	if err != nil {
		logger.Error("Change computation failed",
			slog.Int64("remaining_cents", remainingCents),
			slog.String("deposit_id", deposit.DepositID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.purchaseRepo.SettlePurchase(ctx, deposit.DepositID, purchase.Lines, rec.unitPrices, rec.quantitiesByProduct, userID); err != nil {
		if !errors.Is(err, apperrors.ErrConcurrencyConflict) {
			logger.Error("Settlement failed", slog.String("error", err.Error()), slog.String("deposit_id", deposit.DepositID))
		}
		return nil, err
	}

	logger.Info("Purchase settled",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("total_spent", rec.total.StringFixed(2)),
		slog.Int("line_count", len(purchase.Lines)))

	return &domain.PurchaseReceipt{
		TotalSpent: rec.total,
		Lines:      purchase.Lines,
		Change:     change,
	}, nil
}
