package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portsrepo "github.com/vendmach/vending_machine_api/internal/core/ports/repositories"
	"github.com/vendmach/vending_machine_api/internal/models"
	"github.com/vendmach/vending_machine_api/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

// NewProductRepository creates a pgx-backed product repository.
func NewProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, price, quantity, seller_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Price,
		&m.Quantity,
		&m.SellerID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
        INSERT INTO products (product_id, name, price, quantity, seller_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Name,
		modelProduct.Price,
		modelProduct.Quantity,
		modelProduct.SellerID,
		modelProduct.IsActive,
		modelProduct.CreatedAt,
		modelProduct.CreatedBy,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product name %q is taken: %w", product.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1;
	`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	domainProduct := mapping.ToDomainProduct(*m)
	return &domainProduct, nil
}

func (r *PgxProductRepository) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name = $1;
	`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by name %q: %w", name, err)
	}
	domainProduct := mapping.ToDomainProduct(*m)
	return &domainProduct, nil
}

// FindActiveProductsByIDs fetches all active products for the given ids in one
// query. Ids without an active product are absent from the returned map.
func (r *PgxProductRepository) FindActiveProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1) AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(*m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

func (r *PgxProductRepository) FindActiveProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE is_active = TRUE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		modelProducts = append(modelProducts, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
        UPDATE products
        SET name = $1, price = $2, quantity = $3, last_updated_at = $4, last_updated_by = $5
        WHERE product_id = $6 AND is_active = TRUE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelProduct.Name,
		modelProduct.Price,
		modelProduct.Quantity,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
		modelProduct.ProductID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product name %q is taken: %w", product.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update product query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProductRepository) MarkProductInactive(ctx context.Context, productID string, updatedBy string) error {
	query := `
        UPDATE products
        SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE product_id = $3 AND is_active = TRUE;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), updatedBy, productID)
	if err != nil {
		return fmt.Errorf("failed to mark product inactive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
