package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	"github.com/vendmach/vending_machine_api/internal/utils/mapping"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// NewPurchaseRepository creates a pgx-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

// SettlePurchase runs the whole settlement write path inside a single database
// transaction: purchase lines are inserted, stock is decremented by the
// aggregated per-product quantities, and the deposit is flipped to utilized.
// A concurrent reader sees either the pre-purchase or post-purchase state,
// never a partial one.
func (r *PgxPurchaseRepository) SettlePurchase(ctx context.Context, depositID string, lines []domain.PurchaseLine,
	unitPrices map[string]decimal.Decimal, quantitiesByProduct map[string]int64, settledBy string) ([]domain.Purchase, error) {

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	// 1. Insert one purchase row per input line, capturing the unit price at
	// settlement time.
	purchases := make([]domain.Purchase, len(lines))
	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO purchases (purchase_id, product_id, deposit_id, quantity, unit_price, total_spent, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i, line := range lines {
		unitPrice, ok := unitPrices[line.ProductID]
		if !ok {
			return nil, apperrors.NewAppError(http.StatusInternalServerError,
				"internal error: no unit price for product "+line.ProductID, nil)
		}
		purchases[i] = domain.Purchase{
			PurchaseID: uuid.NewString(),
			ProductID:  line.ProductID,
			DepositID:  depositID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalSpent: unitPrice.Mul(decimal.NewFromInt(line.Quantity)).Round(2),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     settledBy,
				LastUpdatedAt: now,
				LastUpdatedBy: settledBy,
			},
		}
		modelPurchase := mapping.ToModelPurchase(purchases[i])
		batch.Queue(insertQuery,
			modelPurchase.PurchaseID,
			modelPurchase.ProductID,
			modelPurchase.DepositID,
			modelPurchase.Quantity,
			modelPurchase.UnitPrice,
			modelPurchase.TotalSpent,
			modelPurchase.CreatedAt,
			modelPurchase.CreatedBy,
			modelPurchase.LastUpdatedAt,
			modelPurchase.LastUpdatedBy,
		)
	}

	// 2. Decrement stock per product. The quantity >= $1 guard is the optimistic
	// check: losing a race to another purchase leaves zero rows affected instead
	// of overselling. GREATEST keeps the stored quantity floored at zero.
	decrementQuery := `
		UPDATE products
		SET quantity = GREATEST(quantity - $1, 0), last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $4 AND is_active = TRUE AND quantity >= $1;
	`
	for productID, quantity := range quantitiesByProduct {
		batch.Queue(decrementQuery, quantity, now, settledBy, productID)
	}

	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, fmt.Errorf("failed to insert purchase line: %w", err)
		}
	}
	for range quantitiesByProduct {
		cmdTag, err := results.Exec()
		if err != nil {
			results.Close()
			return nil, fmt.Errorf("failed to decrement product stock: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			results.Close()
			return nil, fmt.Errorf("stock changed concurrently: %w", apperrors.ErrConcurrencyConflict)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close settlement batch: %w", err)
	}

	// 3. Mark the deposit utilized. The test-and-set on is_utilized makes a
	// concurrent double-spend of the same deposit lose the race here.
	utilizeQuery := `
		UPDATE deposits
		SET is_utilized = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE deposit_id = $3 AND is_utilized = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, utilizeQuery, now, settledBy, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark deposit utilized: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("deposit %s already utilized: %w", depositID, apperrors.ErrConcurrencyConflict)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *PgxPurchaseRepository) HasPurchasesForProduct(ctx context.Context, productID string) (bool, error) {
	query := `SELECT 1 FROM purchases WHERE product_id = $1 LIMIT 1;`
	var one int
	err := r.Pool.QueryRow(ctx, query, productID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check purchases for product %s: %w", productID, err)
	}
	return true, nil
}
