package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// PurchaseItem is one requested product line on the wire.
type PurchaseItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreatePurchaseRequest defines the payload for buying products.
type CreatePurchaseRequest struct {
	Products []PurchaseItem `json:"products" binding:"required,min=1"`
}

// ToPurchaseRequest converts the wire payload to the domain purchase request,
// preserving line order and duplicates.
func (r CreatePurchaseRequest) ToPurchaseRequest() domain.PurchaseRequest {
	lines := make([]domain.PurchaseLine, len(r.Products))
	for i, item := range r.Products {
		lines[i] = domain.PurchaseLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return domain.PurchaseRequest{Lines: lines}
}

// PurchaseResponse is the receipt returned for a settled purchase.
type PurchaseResponse struct {
	TotalSpent decimal.Decimal `json:"total_spent"`
	Products   []PurchaseItem  `json:"products"`
	Change     []CoinItem      `json:"change"`
}

// ToPurchaseResponse converts a settlement receipt to its wire form.
func ToPurchaseResponse(receipt *domain.PurchaseReceipt) PurchaseResponse {
	products := make([]PurchaseItem, len(receipt.Lines))
	for i, line := range receipt.Lines {
		products[i] = PurchaseItem{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return PurchaseResponse{
		TotalSpent: receipt.TotalSpent,
		Products:   products,
		Change:     ToCoinItems(receipt.Change),
	}
}
