package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SimpleModel is the flat annual-rate estimator. Growth compounds annually and
// income is drawn from the pot at the parameter set's drawdown rate.
type SimpleModel struct {
	Params domain.ParameterSet
}

// NewSimpleModel creates a simple model backed by params
func NewSimpleModel(params domain.ParameterSet) SimpleModel {
	return SimpleModel{Params: params}
}

// TargetRetirementIncome returns the replacement-ratio share of salary, inflated to retirement
func (m SimpleModel) TargetRetirementIncome(currentSalary decimal.Decimal, yearsToRetirement int) decimal.Decimal {
	today := currentSalary.Mul(m.Params.ReplacementRatio)
	return today.Mul(CompoundFactor(m.Params.InflationRate, yearsToRetirement))
}

// StatePensionAtRetirement inflates the annual state pension to the retirement year
func (m SimpleModel) StatePensionAtRetirement(yearsToRetirement int) decimal.Decimal {
	return m.Params.StatePensionAnnual.Mul(CompoundFactor(m.Params.InflationRate, yearsToRetirement))
}

// ProjectPensionValue grows an existing pot with annual compounding
func (m SimpleModel) ProjectPensionValue(currentValue decimal.Decimal, years int) decimal.Decimal {
	return currentValue.Mul(CompoundFactor(m.Params.GrowthRate, years))
}

// AnnualIncomeFromPot returns the yearly income a pot supports at the drawdown rate
func (m SimpleModel) AnnualIncomeFromPot(pot decimal.Decimal) decimal.Decimal {
	return pot.Mul(m.Params.DrawdownRate)
}

// CapitalRequiredForIncome is the inverse of AnnualIncomeFromPot
func (m SimpleModel) CapitalRequiredForIncome(income decimal.Decimal) decimal.Decimal {
	return income.Div(m.Params.DrawdownRate)
}

// MonthlySavingsRequired returns the monthly saving that reaches targetCapital
// in yearsToSave years with monthly compounding at growth/12.
func (m SimpleModel) MonthlySavingsRequired(targetCapital decimal.Decimal, yearsToSave int) (decimal.Decimal, error) {
	if yearsToSave <= 0 {
		return decimal.Zero, fmt.Errorf("monthly savings over %d years: %w", yearsToSave, domain.ErrNonFutureRetirement)
	}
	return SinkingFundPayment(targetCapital, MonthlyRate(m.Params.GrowthRate), yearsToSave*12), nil
}

// CalculateRetirementShortfall runs the full simple-model pipeline
func (m SimpleModel) CalculateRetirementShortfall(currentAge int, currentSalary, existingPensionValue decimal.Decimal, targetRetirementAge int) (*domain.SimpleResult, error) {
	yearsToRetirement := targetRetirementAge - currentAge
	if yearsToRetirement <= 0 {
		return nil, fmt.Errorf("retiring at %d from age %d: %w", targetRetirementAge, currentAge, domain.ErrNonFutureRetirement)
	}

	targetIncome := m.TargetRetirementIncome(currentSalary, yearsToRetirement)
	statePension := m.StatePensionAtRetirement(yearsToRetirement)
	projectedPot := m.ProjectPensionValue(existingPensionValue, yearsToRetirement)
	potIncome := m.AnnualIncomeFromPot(projectedPot)
	totalIncome := statePension.Add(potIncome)

	incomeShortfall := maxZero(targetIncome.Sub(totalIncome))
	capitalShortfall := m.CapitalRequiredForIncome(incomeShortfall)

	monthlySavings := decimal.Zero
	if incomeShortfall.IsPositive() {
		var err error
		monthlySavings, err = m.MonthlySavingsRequired(capitalShortfall, yearsToRetirement)
		if err != nil {
			return nil, err
		}
	}

	return &domain.SimpleResult{
		CurrentAge:                currentAge,
		TargetRetirementAge:       targetRetirementAge,
		YearsToRetirement:         yearsToRetirement,
		CurrentSalary:             currentSalary,
		ExistingPensionValue:      existingPensionValue,
		TargetIncomeAtRetirement:  targetIncome,
		StatePensionAtRetirement:  statePension,
		ProjectedExistingPension:  projectedPot,
		IncomeFromExistingPension: potIncome,
		TotalProjectedIncome:      totalIncome,
		IncomeShortfall:           incomeShortfall,
		CapitalShortfall:          capitalShortfall,
		MonthlySavingsRequired:    monthlySavings,
		ProgressPercentage:        incomeProgress(totalIncome, targetIncome),
		IsOnTrack:                 incomeShortfall.IsZero(),
	}, nil
}

// incomeProgress is projected over target income as a percentage, capped at 100.
// A zero target is treated as fully funded.
func incomeProgress(projected, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return hundred
	}
	pct := projected.Div(target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
