package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalNear(t *testing.T, expected, actual decimal.Decimal, tolerance string, msgAndArgs ...any) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	assert.True(t, diff.LessThanOrEqual(d(tolerance)),
		append([]any{"expected %s, got %s (diff %s)", expected, actual, diff}, msgAndArgs...)...)
}

func TestCompoundFactor(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		periods  int
		expected string
	}{
		{"zero periods", "0.05", 0, "1"},
		{"one period", "0.05", 1, "1.05"},
		{"two periods", "0.05", 2, "1.1025"},
		{"three periods", "0.1", 3, "1.331"},
		{"zero rate", "0", 40, "1"},
		{"negative periods discount", "0.25", -1, "0.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompoundFactor(d(tt.rate), tt.periods)
			assert.True(t, d(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCompoundFactor_LongHorizonStaysBounded(t *testing.T) {
	got := CompoundFactor(MonthlyRate(d("0.05")), 46*12)
	assert.LessOrEqual(t, -got.Exponent(), int32(growthPrecision))
	// (1+0.05/12)^552 ~= 9.9
	assertDecimalNear(t, d("9.9"), got, "0.1")
}

func TestFractionalCompoundFactor(t *testing.T) {
	t.Run("whole years are exact", func(t *testing.T) {
		got := FractionalCompoundFactor(d("0.025"), d("32"))
		assert.True(t, CompoundFactor(d("0.025"), 32).Equal(got))
	})

	t.Run("half year", func(t *testing.T) {
		got := FractionalCompoundFactor(d("0.21"), d("0.5"))
		assertDecimalNear(t, d("1.1"), got, "0.000000001")
	})

	t.Run("years and months", func(t *testing.T) {
		got := FractionalCompoundFactor(d("0.21"), d("2.5"))
		assertDecimalNear(t, d("1.61051"), got, "0.000000001")
	})
}

func TestFutureValueOfAnnuity(t *testing.T) {
	tests := []struct {
		name     string
		payment  string
		rate     string
		periods  int
		expected string
	}{
		{"no periods", "100", "0.1", 0, "0"},
		{"negative periods", "100", "0.1", -3, "0"},
		{"zero rate is plain sum", "100", "0", 12, "1200"},
		{"two periods", "100", "0.1", 2, "210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FutureValueOfAnnuity(d(tt.payment), d(tt.rate), tt.periods)
			assert.True(t, d(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSinkingFundPayment(t *testing.T) {
	t.Run("zero rate divides evenly", func(t *testing.T) {
		assert.True(t, d("100").Equal(SinkingFundPayment(d("1200"), decimal.Zero, 12)))
	})

	t.Run("inverse of annuity", func(t *testing.T) {
		assert.True(t, d("100").Equal(SinkingFundPayment(d("210"), d("0.1"), 2)))
	})

	t.Run("payment accumulates back to target", func(t *testing.T) {
		target := d("250000")
		r := MonthlyRate(d("0.045"))
		n := 32 * 12

		payment := SinkingFundPayment(target, r, n)
		assert.True(t, payment.IsPositive())
		assertDecimalNear(t, target, FutureValueOfAnnuity(payment, r, n), "0.0001")
	})
}

func TestMaxZero(t *testing.T) {
	assert.True(t, maxZero(d("-5")).IsZero())
	assert.True(t, maxZero(decimal.Zero).IsZero())
	assert.True(t, d("5").Equal(maxZero(d("5"))))
}
