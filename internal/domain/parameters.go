package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Model names one of the two projection strategies. They use different
// statutory assumptions and are never mixed within one calculation.
type Model string

const (
	// ModelSimple is the flat annual-rate estimator
	ModelSimple Model = "simple"
	// ModelDetailed is the monthly-accrual estimator with Auto-Enrolment contributions
	ModelDetailed Model = "detailed"
)

// ParseModel converts a user supplied model name, defaulting empty input to the detailed model
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case "":
		return ModelDetailed, nil
	case ModelSimple, ModelDetailed:
		return Model(s), nil
	default:
		return "", fmt.Errorf("unknown model %q (valid: simple, detailed)", s)
	}
}

// AutoEnrolmentRules holds the statutory workplace pension constants used by the detailed model
type AutoEnrolmentRules struct {
	ContributionRate   decimal.Decimal `yaml:"contribution_rate" json:"contribution_rate"`
	LowerEarningsLimit decimal.Decimal `yaml:"lower_earnings_limit" json:"lower_earnings_limit"`
	UpperEarningsLimit decimal.Decimal `yaml:"upper_earnings_limit" json:"upper_earnings_limit"`

	// Historical accrual assumed when estimating an existing pot from salary alone
	HistoricalStartAge         int             `yaml:"historical_start_age" json:"historical_start_age"`
	HistoricalContributionRate decimal.Decimal `yaml:"historical_contribution_rate" json:"historical_contribution_rate"`
}

// BandWidth returns the span of qualifying earnings between the two limits
func (r AutoEnrolmentRules) BandWidth() decimal.Decimal {
	return r.UpperEarningsLimit.Sub(r.LowerEarningsLimit)
}

// ParameterSet contains the constants governing one projection model
type ParameterSet struct {
	Name                string          `yaml:"name" json:"name"`
	StatePensionAnnual  decimal.Decimal `yaml:"state_pension_annual" json:"state_pension_annual"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age"`
	ReplacementRatio    decimal.Decimal `yaml:"replacement_ratio" json:"replacement_ratio"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	GrowthRate          decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	DrawdownRate        decimal.Decimal `yaml:"drawdown_rate" json:"drawdown_rate"`
	TaxFreeCashFraction decimal.Decimal `yaml:"tax_free_cash_fraction" json:"tax_free_cash_fraction"`
	// LegacyPlanFraction is the share of a proposed monthly funding cost routed to
	// the primary (APF) vehicle; the remainder goes to the ISA.
	LegacyPlanFraction decimal.Decimal `yaml:"legacy_plan_fraction" json:"legacy_plan_fraction"`

	// Detailed model only
	AutoEnrolment              AutoEnrolmentRules `yaml:"auto_enrolment" json:"auto_enrolment"`
	WithdrawalMultiple         decimal.Decimal    `yaml:"withdrawal_multiple" json:"withdrawal_multiple"`
	ExistingPlanWithdrawalRate decimal.Decimal    `yaml:"existing_plan_withdrawal_rate" json:"existing_plan_withdrawal_rate"`
}

// SimpleParameters returns the 2024/25 assumptions backing the simple model
func SimpleParameters() ParameterSet {
	return ParameterSet{
		Name:                "simple",
		StatePensionAnnual:  decimal.NewFromInt(11502),
		RetirementAge:       67,
		ReplacementRatio:    decimal.NewFromFloat(0.5),
		InflationRate:       decimal.NewFromFloat(0.025),
		GrowthRate:          decimal.NewFromFloat(0.045),
		DrawdownRate:        decimal.NewFromFloat(0.035),
		TaxFreeCashFraction: decimal.NewFromFloat(0.25),
		LegacyPlanFraction:  decimal.Zero,
	}
}

// DetailedParameters returns the assumptions backing the detailed model.
// RequiredCapital uses the flat WithdrawalMultiple (25x, a 4% rule) even though
// DrawdownRate is 3.5%; the two are not reconciled.
func DetailedParameters() ParameterSet {
	return ParameterSet{
		Name:                "detailed",
		StatePensionAnnual:  decimal.NewFromInt(11502),
		RetirementAge:       67,
		ReplacementRatio:    decimal.NewFromFloat(0.6),
		InflationRate:       decimal.NewFromFloat(0.025),
		GrowthRate:          decimal.NewFromFloat(0.05),
		DrawdownRate:        decimal.NewFromFloat(0.035),
		TaxFreeCashFraction: decimal.NewFromFloat(0.25),
		LegacyPlanFraction:  decimal.NewFromFloat(0.7),
		AutoEnrolment: AutoEnrolmentRules{
			ContributionRate:           decimal.NewFromFloat(0.08),
			LowerEarningsLimit:         decimal.NewFromInt(6240),
			UpperEarningsLimit:         decimal.NewFromInt(50270),
			HistoricalStartAge:         21,
			HistoricalContributionRate: decimal.NewFromFloat(0.08),
		},
		WithdrawalMultiple:         decimal.NewFromInt(25),
		ExistingPlanWithdrawalRate: decimal.NewFromFloat(0.04),
	}
}

// ParametersFor returns the default parameter set of a model
func ParametersFor(m Model) ParameterSet {
	if m == ModelSimple {
		return SimpleParameters()
	}
	return DetailedParameters()
}

// Validate checks the invariants every parameter set must hold
func (p ParameterSet) Validate() error {
	if p.RetirementAge <= 0 {
		return fmt.Errorf("retirement age must be positive")
	}
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"replacement ratio", p.ReplacementRatio},
		{"inflation rate", p.InflationRate},
		{"growth rate", p.GrowthRate},
		{"tax-free cash fraction", p.TaxFreeCashFraction},
		{"legacy plan fraction", p.LegacyPlanFraction},
		{"state pension", p.StatePensionAnnual},
	}
	for _, r := range rates {
		if r.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", r.name)
		}
	}
	// Drawdown is a divisor when converting income back to capital.
	if !p.DrawdownRate.IsPositive() {
		return fmt.Errorf("drawdown rate must be positive")
	}
	return nil
}

// ParameterOverrides is a partial ParameterSet; nil fields keep the base value
type ParameterOverrides struct {
	StatePensionAnnual  *decimal.Decimal `yaml:"state_pension_annual,omitempty" json:"state_pension_annual,omitempty"`
	RetirementAge       *int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	ReplacementRatio    *decimal.Decimal `yaml:"replacement_ratio,omitempty" json:"replacement_ratio,omitempty"`
	InflationRate       *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	GrowthRate          *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
	DrawdownRate        *decimal.Decimal `yaml:"drawdown_rate,omitempty" json:"drawdown_rate,omitempty"`
	TaxFreeCashFraction *decimal.Decimal `yaml:"tax_free_cash_fraction,omitempty" json:"tax_free_cash_fraction,omitempty"`
	LegacyPlanFraction  *decimal.Decimal `yaml:"legacy_plan_fraction,omitempty" json:"legacy_plan_fraction,omitempty"`
}

// Apply returns a copy of base with every non-nil override set
func (o *ParameterOverrides) Apply(base ParameterSet) ParameterSet {
	if o == nil {
		return base
	}
	out := base
	setDecimal := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	setDecimal(&out.StatePensionAnnual, o.StatePensionAnnual)
	setDecimal(&out.ReplacementRatio, o.ReplacementRatio)
	setDecimal(&out.InflationRate, o.InflationRate)
	setDecimal(&out.GrowthRate, o.GrowthRate)
	setDecimal(&out.DrawdownRate, o.DrawdownRate)
	setDecimal(&out.TaxFreeCashFraction, o.TaxFreeCashFraction)
	setDecimal(&out.LegacyPlanFraction, o.LegacyPlanFraction)
	if o.RetirementAge != nil {
		out.RetirementAge = *o.RetirementAge
	}
	return out
}

// Merge layers other on top of o, returning a new set of overrides
func (o *ParameterOverrides) Merge(other *ParameterOverrides) *ParameterOverrides {
	if o == nil {
		return other.clone()
	}
	out := o.clone()
	if other == nil {
		return out
	}
	pick := func(dst **decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			c := *v
			*dst = &c
		}
	}
	pick(&out.StatePensionAnnual, other.StatePensionAnnual)
	pick(&out.ReplacementRatio, other.ReplacementRatio)
	pick(&out.InflationRate, other.InflationRate)
	pick(&out.GrowthRate, other.GrowthRate)
	pick(&out.DrawdownRate, other.DrawdownRate)
	pick(&out.TaxFreeCashFraction, other.TaxFreeCashFraction)
	pick(&out.LegacyPlanFraction, other.LegacyPlanFraction)
	if other.RetirementAge != nil {
		age := *other.RetirementAge
		out.RetirementAge = &age
	}
	return out
}

func (o *ParameterOverrides) clone() *ParameterOverrides {
	if o == nil {
		return nil
	}
	out := &ParameterOverrides{}
	cp := func(v *decimal.Decimal) *decimal.Decimal {
		if v == nil {
			return nil
		}
		c := *v
		return &c
	}
	out.StatePensionAnnual = cp(o.StatePensionAnnual)
	out.ReplacementRatio = cp(o.ReplacementRatio)
	out.InflationRate = cp(o.InflationRate)
	out.GrowthRate = cp(o.GrowthRate)
	out.DrawdownRate = cp(o.DrawdownRate)
	out.TaxFreeCashFraction = cp(o.TaxFreeCashFraction)
	out.LegacyPlanFraction = cp(o.LegacyPlanFraction)
	if o.RetirementAge != nil {
		age := *o.RetirementAge
		out.RetirementAge = &age
	}
	return out
}
