package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// DetailedModel is the monthly-accrual estimator. Contributions follow the
// Auto-Enrolment banded earnings rule and grow monthly at growth/12.
type DetailedModel struct {
	Params domain.ParameterSet
}

// NewDetailedModel creates a detailed model backed by params
func NewDetailedModel(params domain.ParameterSet) DetailedModel {
	return DetailedModel{Params: params}
}

// CalculateExistingPensionValue estimates a pot built from contributions at the
// historical rate since the historical start age. Nothing accrues before that age.
func (m DetailedModel) CalculateExistingPensionValue(annualSalary decimal.Decimal, currentAge int) domain.ExistingPension {
	ae := m.Params.AutoEnrolment
	monthly := annualSalary.Mul(ae.HistoricalContributionRate).Div(twelve)

	months := (currentAge - ae.HistoricalStartAge) * 12
	if months < 0 {
		months = 0
	}

	return domain.ExistingPension{
		FundValue:          FutureValueOfAnnuity(monthly, MonthlyRate(m.Params.GrowthRate), months),
		TotalContributions: monthly.Mul(decimal.NewFromInt(int64(months))),
	}
}

// CalculateMonthlyAEContribution returns the statutory monthly contribution on
// earnings between the lower and upper limits
func (m DetailedModel) CalculateMonthlyAEContribution(annualSalary decimal.Decimal) decimal.Decimal {
	ae := m.Params.AutoEnrolment
	pensionable := maxZero(annualSalary.Sub(ae.LowerEarningsLimit))
	if band := ae.BandWidth(); pensionable.GreaterThan(band) {
		pensionable = band
	}
	return pensionable.Mul(ae.ContributionRate).Div(twelve)
}

// TargetIncome is the replacement-ratio share of today's salary (no inflation)
func (m DetailedModel) TargetIncome(annualSalary decimal.Decimal) decimal.Decimal {
	return annualSalary.Mul(m.Params.ReplacementRatio)
}

// RequiredCapital applies the fixed withdrawal multiple to a target income.
// The multiple is independent of DrawdownRate.
func (m DetailedModel) RequiredCapital(targetIncome decimal.Decimal) decimal.Decimal {
	return targetIncome.Mul(m.Params.WithdrawalMultiple)
}

// CalculatePensionShortfall projects the pot with Auto-Enrolment contributions
func (m DetailedModel) CalculatePensionShortfall(currentAge int, annualSalary, existingPensionValue decimal.Decimal) (*domain.PensionShortfall, error) {
	return m.ProjectShortfallWithContribution(currentAge, annualSalary, existingPensionValue, m.CalculateMonthlyAEContribution(annualSalary))
}

// ProjectShortfallWithContribution projects the pot with an explicit monthly
// contribution, e.g. the sum of custom employee and employer amounts
func (m DetailedModel) ProjectShortfallWithContribution(currentAge int, annualSalary, existingPensionValue, monthlyContribution decimal.Decimal) (*domain.PensionShortfall, error) {
	months := (m.Params.RetirementAge - currentAge) * 12
	if months <= 0 {
		return nil, fmt.Errorf("retiring at %d from age %d: %w", m.Params.RetirementAge, currentAge, domain.ErrNonFutureRetirement)
	}

	r := MonthlyRate(m.Params.GrowthRate)
	targetIncome := m.TargetIncome(annualSalary)
	required := m.RequiredCapital(targetIncome)

	grownExisting := existingPensionValue.Mul(CompoundFactor(r, months))
	projected := grownExisting.Add(FutureValueOfAnnuity(monthlyContribution, r, months))

	shortfall := maxZero(required.Sub(projected))
	funding := decimal.Zero
	if shortfall.IsPositive() {
		funding = SinkingFundPayment(shortfall, r, months)
	}

	return &domain.PensionShortfall{
		TargetIncome:          targetIncome,
		RequiredCapital:       required,
		ProjectedPensionValue: projected,
		Shortfall:             shortfall,
		MonthlyFundingCost:    funding,
		MonthsToRetirement:    months,
		MonthlyContribution:   monthlyContribution,
	}, nil
}

// FundingProgress returns projected/required as a whole percentage.
// A zero requirement counts as fully funded.
func FundingProgress(projected, required decimal.Decimal) int {
	if required.IsZero() {
		return 100
	}
	return int(projected.Div(required).Mul(hundred).Round(0).IntPart())
}

// ClassifyProgress buckets a progress percentage into a funding status
func ClassifyProgress(progress int) domain.FundingStatus {
	switch {
	case progress >= 100:
		return domain.StatusOnTrack
	case progress >= 80:
		return domain.StatusClose
	default:
		return domain.StatusGap
	}
}
