// Package money holds the currency arithmetic conventions shared by the
// ledger engine: all amounts are decimals at 2-decimal scale, and all
// comparisons tolerate one cent of rounding residue.
package money

import "github.com/shopspring/decimal"

// Epsilon is the comparison tolerance for stored amounts: 0.01 currency units.
var Epsilon = decimal.New(1, -2)

// Round normalizes an amount to the stored 2-decimal scale (half away from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Equal reports whether two amounts agree within Epsilon.
func Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// IsZero reports whether an amount is zero within Epsilon. The bound is
// inclusive, matching Equal: a residue of exactly one cent still counts as
// settled.
func IsZero(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Epsilon)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if b.LessThan(a) {
		return b
	}
	return a
}
