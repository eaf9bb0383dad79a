package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// CoinItem is one denomination/quantity pair on the wire.
type CoinItem struct {
	Value    int64 `json:"value" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

// CreateDepositRequest defines the payload for depositing coins.
type CreateDepositRequest struct {
	Coins []CoinItem `json:"coins" binding:"required,min=1"`
}

// ToCoinStack converts the wire coins to a domain coin stack without validation;
// validation and normalization happen in the domain.
func (r CreateDepositRequest) ToCoinStack() domain.CoinStack {
	stack := make(domain.CoinStack, len(r.Coins))
	for i, coin := range r.Coins {
		stack[i] = domain.CoinEntry{Value: domain.Denomination(coin.Value), Quantity: coin.Quantity}
	}
	return stack
}

// DepositResponse is the outward representation of a deposit.
type DepositResponse struct {
	DepositID string          `json:"deposit_id"`
	Amount    decimal.Decimal `json:"amount"`
	Coins     []CoinItem      `json:"coins"`
	Utilized  bool            `json:"utilized"`
}

// ToCoinItems converts a domain coin stack to its wire form.
func ToCoinItems(stack domain.CoinStack) []CoinItem {
	coins := make([]CoinItem, len(stack))
	for i, entry := range stack {
		coins[i] = CoinItem{Value: int64(entry.Value), Quantity: entry.Quantity}
	}
	return coins
}

// ToDepositResponse converts a domain.Deposit to its response DTO.
func ToDepositResponse(deposit *domain.Deposit) DepositResponse {
	return DepositResponse{
		DepositID: deposit.DepositID,
		Amount:    deposit.Amount,
		Coins:     ToCoinItems(deposit.Coins),
		Utilized:  deposit.Utilized,
	}
}
