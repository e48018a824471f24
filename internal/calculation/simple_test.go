package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleModel_ProjectPensionValue(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	values := []string{"0", "1", "25000", "1000000"}
	for _, v := range values {
		value := d(v)
		assert.True(t, value.Equal(m.ProjectPensionValue(value, 0)), "zero years must not change %s", v)
		for _, years := range []int{1, 10, 32} {
			assert.True(t, m.ProjectPensionValue(value, years).GreaterThanOrEqual(value),
				"%s over %d years should not shrink", v, years)
		}
	}

	assert.True(t, d("104.5").Equal(m.ProjectPensionValue(d("100"), 1)))
}

func TestSimpleModel_IncomeCapitalRoundTrip(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	for _, v := range []string{"0", "1", "100000", "123456.78"} {
		pot := d(v)
		income := m.AnnualIncomeFromPot(pot)
		assertDecimalNear(t, pot, m.CapitalRequiredForIncome(income), "0.0000001", "pot %s", v)
	}

	assert.True(t, d("3500").Equal(m.AnnualIncomeFromPot(d("100000"))))
}

func TestSimpleModel_TargetAndStatePension(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	assert.True(t, d("25000").Equal(m.TargetRetirementIncome(d("50000"), 0)))
	assert.True(t, d("25625").Equal(m.TargetRetirementIncome(d("50000"), 1)))
	assert.True(t, d("11502").Equal(m.StatePensionAtRetirement(0)))
	assert.True(t, d("11789.55").Equal(m.StatePensionAtRetirement(1)))
}

func TestSimpleModel_MonthlySavingsRequired(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	t.Run("accumulates to target", func(t *testing.T) {
		payment, err := m.MonthlySavingsRequired(d("300000"), 25)
		require.NoError(t, err)
		assertDecimalNear(t, d("300000"), FutureValueOfAnnuity(payment, MonthlyRate(m.Params.GrowthRate), 300), "0.0001")
	})

	t.Run("zero growth is linear", func(t *testing.T) {
		params := domain.SimpleParameters()
		params.GrowthRate = decimal.Zero
		payment, err := NewSimpleModel(params).MonthlySavingsRequired(d("120000"), 10)
		require.NoError(t, err)
		assert.True(t, d("1000").Equal(payment))
	})

	t.Run("no time left", func(t *testing.T) {
		for _, years := range []int{0, -3} {
			_, err := m.MonthlySavingsRequired(d("1000"), years)
			assert.True(t, errors.Is(err, domain.ErrNonFutureRetirement))
		}
	})
}

func TestSimpleModel_CalculateRetirementShortfall(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	t.Run("typical member has a gap", func(t *testing.T) {
		result, err := m.CalculateRetirementShortfall(35, d("50000"), d("25000"), 67)
		require.NoError(t, err)

		assert.Equal(t, 32, result.YearsToRetirement)
		assert.False(t, result.IncomeShortfall.IsNegative())
		assert.False(t, result.MonthlySavingsRequired.IsNegative())
		assert.True(t, result.IncomeShortfall.IsPositive())
		assert.True(t, result.MonthlySavingsRequired.IsPositive())
		assert.False(t, result.IsOnTrack)

		assert.True(t, result.TotalProjectedIncome.Equal(result.StatePensionAtRetirement.Add(result.IncomeFromExistingPension)))
		assert.True(t, result.IncomeShortfall.Equal(result.TargetIncomeAtRetirement.Sub(result.TotalProjectedIncome)))
		assertDecimalNear(t, result.CapitalShortfall, result.IncomeShortfall.Div(d("0.035")), "0.0000001")
		assert.True(t, result.ProgressPercentage.LessThan(d("100")))
		assert.True(t, result.ProgressPercentage.IsPositive())
	})

	t.Run("well funded member is on track", func(t *testing.T) {
		result, err := m.CalculateRetirementShortfall(60, d("10000"), d("500000"), 67)
		require.NoError(t, err)

		assert.True(t, result.IncomeShortfall.IsZero())
		assert.True(t, result.CapitalShortfall.IsZero())
		assert.True(t, result.MonthlySavingsRequired.IsZero())
		assert.True(t, d("100").Equal(result.ProgressPercentage))
		assert.True(t, result.IsOnTrack)
	})

	t.Run("zero salary counts as fully funded", func(t *testing.T) {
		result, err := m.CalculateRetirementShortfall(40, decimal.Zero, decimal.Zero, 67)
		require.NoError(t, err)
		assert.True(t, d("100").Equal(result.ProgressPercentage))
		assert.True(t, result.MonthlySavingsRequired.IsZero())
	})

	t.Run("target age not in the future", func(t *testing.T) {
		cases := []struct{ age, target int }{{70, 67}, {67, 67}}
		for _, c := range cases {
			result, err := m.CalculateRetirementShortfall(c.age, d("50000"), d("25000"), c.target)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrNonFutureRetirement), "age %d target %d", c.age, c.target)
		}
	})
}

func TestSimpleModel_SavingsZeroExactlyWhenNoShortfall(t *testing.T) {
	m := NewSimpleModel(domain.SimpleParameters())

	for _, salary := range []string{"0", "15000", "30000", "50000", "120000"} {
		for _, pot := range []string{"0", "25000", "400000", "2000000"} {
			result, err := m.CalculateRetirementShortfall(35, d(salary), d(pot), 67)
			require.NoError(t, err)
			assert.Equal(t, result.IncomeShortfall.IsZero(), result.MonthlySavingsRequired.IsZero(),
				"salary %s pot %s", salary, pot)
		}
	}
}
