// =============================================================================
// GAEB Converter - Decimal Formatting
// =============================================================================

package model

import "github.com/shopspring/decimal"

// FormatDecimal renders a decimal preserving its scale: a value read as
// "10.000" comes back as "10.000", not "10". decimal.String() trims trailing
// zeros, which is textually lossy for the exchange format.
func FormatDecimal(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}
