package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a row in the products table.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"` // numeric(11,2)
	Quantity  int64           `db:"quantity"`
	SellerID  string          `db:"seller_id"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
