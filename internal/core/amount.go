package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits carried by
// monetary amounts, matching the persisted column scale.
const AmountPrecision = 4

// ParseAmount converts loosely-typed text into a strictly positive
// amount. Digits beyond AmountPrecision are rounded half-up. Invalid
// text, zero and negative values all yield ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(AmountPrecision)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
