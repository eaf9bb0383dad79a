package models

import (
	"github.com/shopspring/decimal"
)

// CoinEntry mirrors one denomination/quantity pair inside the coins jsonb column.
type CoinEntry struct {
	Value    int64 `json:"value"`
	Quantity int64 `json:"quantity"`
}

// Deposit represents a row in the deposits table. The coins column stores the
// normalized coin stack snapshot taken at creation as jsonb.
type Deposit struct {
	DepositID string          `db:"deposit_id"`
	UserID    string          `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"` // numeric(11,2)
	Coins     []CoinEntry     `db:"coins"`
	Utilized  bool            `db:"is_utilized"`
	AuditFields
}
