package domain

import (
	"github.com/shopspring/decimal"
)

// Deposit is a buyer's pre-funded balance built from coins, consumable exactly
// once by a purchase. At most one unutilized deposit exists per buyer.
type Deposit struct {
	DepositID string          `json:"depositID"`
	UserID    string          `json:"userID"` // FK -> users.user_id
	Amount    decimal.Decimal `json:"amount"` // Derived: sum(value*quantity)/100, 2dp
	Coins     CoinStack       `json:"coins"`  // Snapshot taken at creation
	Utilized  bool            `json:"utilized"`
	AuditFields
}

// AmountFromCoins derives the deposit total in major currency units from a
// normalized coin stack, rounded to 2 decimals.
func AmountFromCoins(coins CoinStack) decimal.Decimal {
	return decimal.NewFromInt(coins.TotalCents()).Shift(-2).Round(2)
}
