package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// growthPrecision bounds the scale of intermediate compounding products
const growthPrecision = 20

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// CompoundFactor returns (1+rate)^periods for a whole number of periods.
// Negative periods discount instead of compounding.
func CompoundFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods < 0 {
		return one.Div(CompoundFactor(rate, -periods))
	}

	// Square-and-multiply, rounding each product so the scale stays bounded.
	result := one
	base := one.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthPrecision)
		}
		base = base.Mul(base).Round(growthPrecision)
	}
	return result
}

// FractionalCompoundFactor returns (1+rate)^years for a fractional number of years.
// Whole years compound exactly; the remaining fraction goes through float64.
func FractionalCompoundFactor(rate decimal.Decimal, years decimal.Decimal) decimal.Decimal {
	whole := years.Floor()
	factor := CompoundFactor(rate, int(whole.IntPart()))

	frac := years.Sub(whole)
	if frac.IsZero() {
		return factor
	}
	r, _ := rate.Float64()
	f, _ := frac.Float64()
	return factor.Mul(decimal.NewFromFloat(math.Pow(1+r, f))).Round(growthPrecision)
}

// MonthlyRate converts an annual rate into its nominal monthly equivalent
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// FutureValueOfAnnuity returns the value after periods of a level payment made
// at the end of each period and compounded at rate.
// A zero rate degrades to the plain sum of payments.
func FutureValueOfAnnuity(payment, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(periods)))
	}
	return payment.Mul(CompoundFactor(rate, periods).Sub(one)).Div(rate)
}

// SinkingFundPayment returns the level payment per period that accumulates to
// target after periods at rate. periods must be positive.
func SinkingFundPayment(target, rate decimal.Decimal, periods int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return target.Div(n)
	}
	return target.Mul(rate).Div(CompoundFactor(rate, periods).Sub(one))
}

// maxZero floors d at zero
func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
