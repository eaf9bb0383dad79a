package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable item listed by a seller.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`  // Unique across active and inactive products
	Price     decimal.Decimal `json:"price"` // 2-decimal fixed-point, >= 0.01
	Quantity  int64           `json:"quantity"`
	SellerID  string          `json:"sellerID"` // FK -> users.user_id
	IsActive  bool            `json:"isActive"` // Delisted products stay for purchase history
	AuditFields
}
