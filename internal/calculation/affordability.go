package calculation

import (
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// AFFORDABILITY ASSUMPTIONS:
//
// 1. Income tax: 2024/25 rest-of-UK bands, no Scottish rates
//    - Personal allowance £12,570, not tapered above £100,000
//    - Basic rate 20% up to £50,270, higher rate 40% above
//
// 2. National Insurance: flat 12% above £12,570 (no upper earnings rate)
//
// 3. The reduced-cost alternative is a flat 70% of the monthly funding cost

// TaxBracket is one band of taxable income above the personal allowance
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal // zero means unbounded
	Rate decimal.Decimal
}

// TakeHomeCalculator estimates net pay from a gross salary
type TakeHomeCalculator struct {
	PersonalAllowance  decimal.Decimal
	Brackets           []TaxBracket
	NIThreshold        decimal.Decimal
	NIRate             decimal.Decimal
	ReducedCostFactor  decimal.Decimal
	ChallengingPercent decimal.Decimal
}

// NewTakeHomeCalculator creates a calculator with the 2024/25 UK rules
func NewTakeHomeCalculator() *TakeHomeCalculator {
	allowance := decimal.NewFromInt(12570)
	basicBand := decimal.NewFromInt(50270).Sub(allowance)
	return &TakeHomeCalculator{
		PersonalAllowance: allowance,
		Brackets: []TaxBracket{
			{Min: decimal.Zero, Max: basicBand, Rate: decimal.NewFromFloat(0.20)},
			{Min: basicBand, Max: decimal.Zero, Rate: decimal.NewFromFloat(0.40)},
		},
		NIThreshold:        decimal.NewFromInt(12570),
		NIRate:             decimal.NewFromFloat(0.12),
		ReducedCostFactor:  decimal.NewFromFloat(0.7),
		ChallengingPercent: decimal.NewFromInt(10),
	}
}

// IncomeTax returns the annual income tax on annualSalary
func (tc *TakeHomeCalculator) IncomeTax(annualSalary decimal.Decimal) decimal.Decimal {
	taxable := maxZero(annualSalary.Sub(tc.PersonalAllowance))
	tax := decimal.Zero
	for _, b := range tc.Brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		top := taxable
		if !b.Max.IsZero() && top.GreaterThan(b.Max) {
			top = b.Max
		}
		tax = tax.Add(top.Sub(b.Min).Mul(b.Rate))
	}
	return tax
}

// NationalInsurance returns the annual employee NI on annualSalary
func (tc *TakeHomeCalculator) NationalInsurance(annualSalary decimal.Decimal) decimal.Decimal {
	return maxZero(annualSalary.Sub(tc.NIThreshold)).Mul(tc.NIRate)
}

// MonthlyTakeHome returns salary net of income tax and NI, per month
func (tc *TakeHomeCalculator) MonthlyTakeHome(annualSalary decimal.Decimal) decimal.Decimal {
	net := annualSalary.Sub(tc.IncomeTax(annualSalary)).Sub(tc.NationalInsurance(annualSalary))
	return net.Div(twelve)
}

// CalculateAffordability compares a monthly funding cost with take-home pay
func (tc *TakeHomeCalculator) CalculateAffordability(annualSalary, monthlyCost decimal.Decimal) *domain.Affordability {
	takeHome := tc.MonthlyTakeHome(annualSalary)
	reduced := monthlyCost.Mul(tc.ReducedCostFactor)

	share := func(cost decimal.Decimal) decimal.Decimal {
		if !takeHome.IsPositive() {
			return decimal.Zero
		}
		return cost.Div(takeHome).Mul(hundred)
	}
	pct := share(monthlyCost)

	return &domain.Affordability{
		AnnualSalary:      annualSalary,
		MonthlyGross:      annualSalary.Div(twelve),
		AnnualIncomeTax:   tc.IncomeTax(annualSalary),
		AnnualNI:          tc.NationalInsurance(annualSalary),
		MonthlyTakeHome:   takeHome,
		MonthlyCost:       monthlyCost,
		CostPercentage:    pct,
		ReducedCost:       reduced,
		ReducedPercentage: share(reduced),
		Challenging:       pct.GreaterThan(tc.ChallengingPercent),
	}
}
