package output

import "github.com/shopspring/decimal"

// FormatAmount formats a decimal amount with 2 decimals. Currency symbols
// and locale formatting are deliberately left to the consuming layer.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatAmount(amount decimal.Decimal) string { return amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
