package models

import (
	"github.com/shopspring/decimal"
)

// Purchase represents a row in the purchases table: one settled purchase line.
type Purchase struct {
	PurchaseID string          `db:"purchase_id"`
	ProductID  string          `db:"product_id"`
	DepositID  string          `db:"deposit_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`   // Price captured at settlement time
	TotalSpent decimal.Decimal `db:"total_spent"`  // unit_price * quantity, 2dp
	AuditFields
}
