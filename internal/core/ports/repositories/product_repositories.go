package repositories

import (
	"context"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	// FindProductByID retrieves a product by its ID regardless of active state.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByName retrieves a product by its unique name.
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)

	// FindActiveProductsByIDs retrieves all active products matching the given ids
	// in one batch. Missing or inactive ids are simply omitted from the result;
	// the caller detects the mismatch.
	FindActiveProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// FindActiveProducts retrieves a paginated list of active products.
	FindActiveProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// MarkProductInactive delists a product. The row survives so purchase history
	// keeps a valid reference.
	MarkProductInactive(ctx context.Context, productID string, updatedBy string) error

	// DeleteProduct removes a product row. Only valid for products no purchase
	// references; the foreign key rejects anything else.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
