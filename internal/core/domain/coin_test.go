package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

func TestValidateDenomination(t *testing.T) {
	for _, d := range []domain.Denomination{5, 10, 20, 50, 100} {
		assert.NoError(t, domain.ValidateDenomination(d))
	}
	for _, d := range []domain.Denomination{0, 1, 3, 25, 200, -5} {
		err := domain.ValidateDenomination(d)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDenomination)
	}
}

func TestMakeChange(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int64
		want        domain.CoinStack
	}{
		{
			name:        "zero amount yields empty stack",
			amountCents: 0,
			want:        domain.CoinStack{},
		},
		{
			name:        "single smallest coin",
			amountCents: 5,
			want:        domain.CoinStack{{Value: 5, Quantity: 1}},
		},
		{
			name:        "seventy cents",
			amountCents: 70,
			want: domain.CoinStack{
				{Value: 50, Quantity: 1},
				{Value: 20, Quantity: 1},
			},
		},
		{
			name:        "large amount favors biggest denomination",
			amountCents: 385,
			want: domain.CoinStack{
				{Value: 100, Quantity: 3},
				{Value: 50, Quantity: 1},
				{Value: 20, Quantity: 1},
				{Value: 10, Quantity: 1},
				{Value: 5, Quantity: 1},
			},
		},
		{
			name:        "exact multiple of a middle denomination",
			amountCents: 40,
			want: domain.CoinStack{
				{Value: 20, Quantity: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.MakeChange(tt.amountCents)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.amountCents, got.TotalCents())
		})
	}
}

// The fixed set {5,10,20,50,100} is canonical, so the greedy stack must both sum
// to the input and use the minimum possible coin count for every multiple of 5.
func TestMakeChange_SumAndMinimality(t *testing.T) {
	for amount := int64(0); amount <= 1000; amount += 5 {
		stack, err := domain.MakeChange(amount)
		require.NoError(t, err)
		assert.Equal(t, amount, stack.TotalCents(), "amount %d", amount)

		var greedyCount int64
		for _, entry := range stack {
			greedyCount += entry.Quantity
		}
		assert.Equal(t, minCoinCount(amount), greedyCount, "amount %d", amount)
	}
}

// minCoinCount computes the optimal coin count by dynamic programming, as an
// oracle for the greedy result.
func minCoinCount(amount int64) int64 {
	const unreachable = int64(1) << 40
	best := make([]int64, amount+1)
	for i := int64(1); i <= amount; i++ {
		best[i] = unreachable
		for _, d := range domain.Denominations {
			if i >= int64(d) && best[i-int64(d)]+1 < best[i] {
				best[i] = best[i-int64(d)] + 1
			}
		}
	}
	return best[amount]
}

func TestMakeChange_Errors(t *testing.T) {
	_, err := domain.MakeChange(-5)
	assert.ErrorIs(t, err, apperrors.ErrUnmakeableChange)

	_, err = domain.MakeChange(63)
	assert.ErrorIs(t, err, apperrors.ErrUnmakeableChange)
}

func TestCoinStackNormalize(t *testing.T) {
	t.Run("merges duplicates and orders largest first", func(t *testing.T) {
		stack := domain.CoinStack{
			{Value: 5, Quantity: 2},
			{Value: 100, Quantity: 1},
			{Value: 5, Quantity: 3},
			{Value: 50, Quantity: 0},
		}
		normalized, err := stack.Normalize()
		require.NoError(t, err)
		assert.Equal(t, domain.CoinStack{
			{Value: 100, Quantity: 1},
			{Value: 5, Quantity: 5},
		}, normalized)
	})

	t.Run("rejects invalid denomination", func(t *testing.T) {
		_, err := domain.CoinStack{{Value: 25, Quantity: 1}}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidDenomination)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := domain.CoinStack{{Value: 10, Quantity: -1}}.Normalize()
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	})
}
