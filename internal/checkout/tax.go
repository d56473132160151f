package checkout

import "github.com/shopspring/decimal"

// DefaultTaxRate matches the portal's configured 5% rate.
var DefaultTaxRate = decimal.NewFromFloat(0.05)

// CalculateTax applies the configured rate to the subtotal and rounds to
// cent precision, so the same subtotal always yields the same tax.
func CalculateTax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(2)
}
