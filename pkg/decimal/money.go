package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision.
// Amounts are constructed from exact decimals, never from binary floats.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// RoundTax rounds to the smallest currency unit using statutory
// round-half-up. Applied only at the points where tax is computed,
// never to intermediate sums.
func (m Money) RoundTax() Money {
	return Money{m.Decimal.Round(2)}
}

// Tax applies a tax rate and rounds the result to the currency unit.
func (m Money) Tax(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate)}.RoundTax()
}

// Percent returns this amount as a percentage of the given base,
// or zero when the base is not positive.
func (m Money) Percent(base Money) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return m.Decimal.Div(base.Decimal).Mul(decimal.NewFromInt(100))
}
