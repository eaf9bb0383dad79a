package domain

import (
	"fmt"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
)

// Denomination is a coin face value in cents.
type Denomination int64

// The closed set of accepted coin denominations, largest first. Change making
// relies on this being a canonical coin system: every reachable remainder is a
// multiple of 5, so greedy decomposition is minimal and always terminates at zero.
var Denominations = []Denomination{100, 50, 20, 10, 5}

// ValidateDenomination reports whether value is a member of the fixed
// denomination set.
func ValidateDenomination(value Denomination) error {
	for _, d := range Denominations {
		if value == d {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", apperrors.ErrInvalidDenomination, value)
}

// CoinEntry is one denomination with its count.
type CoinEntry struct {
	Value    Denomination `json:"value"`
	Quantity int64        `json:"quantity"`
}

// CoinStack is an ordered set of coin entries. A normalized stack contains only
// valid denominations, each at most once, with quantity >= 1.
type CoinStack []CoinEntry

// TotalCents returns the summed value of the stack in cents.
func (s CoinStack) TotalCents() int64 {
	var total int64
	for _, entry := range s {
		total += int64(entry.Value) * entry.Quantity
	}
	return total
}

// Normalize validates every entry and returns a canonical stack ordered largest
// denomination first. Duplicate entries for the same denomination are merged and
// zero-quantity entries dropped; negative quantities are rejected.
func (s CoinStack) Normalize() (CoinStack, error) {
	counts := make(map[Denomination]int64, len(Denominations))
	for _, entry := range s {
		if err := ValidateDenomination(entry.Value); err != nil {
			return nil, err
		}
		if entry.Quantity < 0 {
			return nil, fmt.Errorf("%w: coin quantity must not be negative, got %d for value %d",
				apperrors.ErrInvalidQuantity, entry.Quantity, entry.Value)
		}
		counts[entry.Value] += entry.Quantity
	}

	normalized := make(CoinStack, 0, len(counts))
	for _, d := range Denominations {
		if counts[d] > 0 {
			normalized = append(normalized, CoinEntry{Value: d, Quantity: counts[d]})
		}
	}
	return normalized, nil
}

// MakeChange decomposes a non-negative cents amount into coins, greedy largest
// first. A nonzero residual after exhausting all denominations means the amount
// was not a multiple of 5, which the deposit and pricing rules are supposed to
// make impossible; it is reported as ErrUnmakeableChange so the caller can treat
// it as a server-side defect.
func MakeChange(amountCents int64) (CoinStack, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: change amount must not be negative, got %d",
			apperrors.ErrUnmakeableChange, amountCents)
	}

	change := make(CoinStack, 0, len(Denominations))
	remaining := amountCents
	for _, d := range Denominations {
		count := remaining / int64(d)
		if count > 0 {
			change = append(change, CoinEntry{Value: d, Quantity: count})
			remaining %= int64(d)
		}
	}

	if remaining != 0 {
		return nil, fmt.Errorf("%w: residual of %d cents from %d",
			apperrors.ErrUnmakeableChange, remaining, amountCents)
	}
	return change, nil
}
