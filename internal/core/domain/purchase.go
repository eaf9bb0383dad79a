package domain

import (
	"github.com/shopspring/decimal"
)

// PurchaseLine is one requested product with its quantity. A purchase request
// may reference the same product on more than one line; lines are never merged
// in the recorded history.
type PurchaseLine struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PurchaseRequest is the ordered sequence of lines a buyer wants to settle
// against their current deposit.
type PurchaseRequest struct {
	Lines []PurchaseLine
}

// Purchase is a persisted purchase line, capturing the unit price at the time
// of settlement so later price changes never rewrite history.
type Purchase struct {
	PurchaseID string          `json:"purchaseID"`
	ProductID  string          `json:"productID"` // FK -> products.product_id
	DepositID  string          `json:"depositID"` // FK -> deposits.deposit_id
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalSpent decimal.Decimal `json:"totalSpent"` // UnitPrice * Quantity, 2dp
	AuditFields
}

// PurchaseReceipt is the outcome of a successful settlement.
type PurchaseReceipt struct {
	TotalSpent decimal.Decimal `json:"totalSpent"`
	Lines      []PurchaseLine  `json:"lines"`
	Change     CoinStack       `json:"change"`
}
