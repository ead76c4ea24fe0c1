// Package money holds the decimal helpers used for cost allocation.
//
// All amounts are exact decimals (shopspring/decimal). Ratios are computed
// with DivisionPrecision digits, then the product is rounded half-up
// (away from zero) to CurrencyPlaces.
package money

import (
	"github.com/shopspring/decimal"
)

const (
	// DivisionPrecision is the number of decimal digits kept when dividing
	// before the final multiply-and-round.
	DivisionPrecision = 10

	// CurrencyPlaces is the scale every reported amount is rounded to.
	CurrencyPlaces = 3
)

// Round rounds d half-up to CurrencyPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// Ratio returns part/whole rounded half-up to DivisionPrecision digits.
// A zero whole yields zero.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, DivisionPrecision)
}

// Proportion returns round(amount × part/whole). It is the single formula
// behind both item share costs and tax apportionment.
func Proportion(amount, part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return Round(Ratio(part, whole).Mul(amount))
}

// Sum adds up the given amounts without rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FromFloat converts a wire float into a decimal, keeping the shortest
// representation of the float (12.3 stays 12.3, not 12.2999...).
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ToFloat converts d back into a float for the wire.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
