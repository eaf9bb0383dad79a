package services

import (
	"context"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
	"github.com/vendmach/vending_machine_api/internal/dto"
)

// ProductReaderSvc defines read operations for the product catalog.
type ProductReaderSvc interface {
	// GetProductByID retrieves a single active product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of active products.
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
}

// ProductWriterSvc defines seller-facing catalog mutations.
type ProductWriterSvc interface {
	// CreateProduct lists a new product for the seller.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, sellerID string) (*domain.Product, error)

	// UpdateProduct updates a product owned by the requesting seller.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)

	// DeleteProduct removes a product owned by the requesting seller. Products
	// referenced by settled purchases are delisted rather than removed.
	DeleteProduct(ctx context.Context, productID string, requestingUserID string) error
}

// ProductSvcFacade combines all product-related service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
