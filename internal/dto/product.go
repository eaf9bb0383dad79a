package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// CreateProductRequest defines the payload for listing a new product.
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=255"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int64           `json:"quantity" binding:"min=0"`
}

// UpdateProductRequest defines the payload for updating a product.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int64           `json:"quantity" binding:"omitempty,min=0"`
}

// ProductResponse is the outward representation of a product.
type ProductResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	SellerID  string          `json:"seller_id"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  product.Quantity,
		SellerID:  product.SellerID,
	}
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListProductsResponse wraps the list of active products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain.Product to ListProductsResponse.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	productResponses := make([]ProductResponse, len(products))
	for i := range products {
		productResponses[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{Products: productResponses}
}
