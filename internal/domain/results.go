package domain

import (
	"time"

	"github.com/rgehrsitz/pgap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// SimpleResult is the output of the flat annual-rate model
type SimpleResult struct {
	CurrentAge           int             `yaml:"current_age" json:"current_age"`
	TargetRetirementAge  int             `yaml:"target_retirement_age" json:"target_retirement_age"`
	YearsToRetirement    int             `yaml:"years_to_retirement" json:"years_to_retirement"`
	CurrentSalary        decimal.Decimal `yaml:"current_salary" json:"current_salary"`
	ExistingPensionValue decimal.Decimal `yaml:"existing_pension_value" json:"existing_pension_value"`

	// Targets
	TargetIncomeAtRetirement decimal.Decimal `yaml:"target_income_at_retirement" json:"target_income_at_retirement"`
	StatePensionAtRetirement decimal.Decimal `yaml:"state_pension_at_retirement" json:"state_pension_at_retirement"`

	// Projections
	ProjectedExistingPension  decimal.Decimal `yaml:"projected_existing_pension" json:"projected_existing_pension"`
	IncomeFromExistingPension decimal.Decimal `yaml:"income_from_existing_pension" json:"income_from_existing_pension"`
	TotalProjectedIncome      decimal.Decimal `yaml:"total_projected_income" json:"total_projected_income"`

	// Shortfalls
	IncomeShortfall        decimal.Decimal `yaml:"income_shortfall" json:"income_shortfall"`
	CapitalShortfall       decimal.Decimal `yaml:"capital_shortfall" json:"capital_shortfall"`
	MonthlySavingsRequired decimal.Decimal `yaml:"monthly_savings_required" json:"monthly_savings_required"`

	ProgressPercentage decimal.Decimal `yaml:"progress_percentage" json:"progress_percentage"`
	IsOnTrack          bool            `yaml:"is_on_track" json:"is_on_track"`
}

// ExistingPension is an estimate of a pot built from historical contributions
type ExistingPension struct {
	FundValue decimal.Decimal `yaml:"fund_value" json:"fund_value"`
	// TotalContributions is the undiscounted sum paid in, for display
	TotalContributions decimal.Decimal `yaml:"total_contributions" json:"total_contributions"`
}

// PensionShortfall is the core output of the detailed model
type PensionShortfall struct {
	TargetIncome          decimal.Decimal `yaml:"target_income" json:"target_income"`
	RequiredCapital       decimal.Decimal `yaml:"required_capital" json:"required_capital"`
	ProjectedPensionValue decimal.Decimal `yaml:"projected_pension_value" json:"projected_pension_value"`
	Shortfall             decimal.Decimal `yaml:"shortfall" json:"shortfall"`
	MonthlyFundingCost    decimal.Decimal `yaml:"monthly_funding_cost" json:"monthly_funding_cost"`

	MonthsToRetirement  int             `yaml:"months_to_retirement" json:"months_to_retirement"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
}

// FundingStatus buckets funding progress for display
type FundingStatus string

const (
	StatusOnTrack FundingStatus = "on_track"
	StatusClose   FundingStatus = "close"
	StatusGap     FundingStatus = "gap"
)

// ContributionSource records which rule produced the monthly contribution
type ContributionSource string

const (
	SourceAutoEnrolment ContributionSource = "auto_enrolment"
	SourceCustom        ContributionSource = "custom"
)

// DetailedForecast is the full result of the detailed model for a member
type DetailedForecast struct {
	Name                       string               `yaml:"name" json:"name"`
	CurrentAge                 int                  `yaml:"current_age" json:"current_age"`
	Age                        dateutil.AgeDuration `yaml:"age" json:"age"`
	RetirementAge              int                  `yaml:"retirement_age" json:"retirement_age"`
	TimeUntilPension           dateutil.AgeDuration `yaml:"time_until_pension" json:"time_until_pension"`
	YearsUntilPension          decimal.Decimal      `yaml:"years_until_pension" json:"years_until_pension"`
	DaysUntilPension           int                  `yaml:"days_until_pension" json:"days_until_pension"`
	YearsUntilPensionFormatted string               `yaml:"years_until_pension_formatted" json:"years_until_pension_formatted"`

	AnnualSalary            decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	ExistingPensionValue    decimal.Decimal `yaml:"existing_pension_value" json:"existing_pension_value"`
	ExistingPensionEstimate bool            `yaml:"existing_pension_estimate" json:"existing_pension_estimate"`
	HistoricalContributions decimal.Decimal `yaml:"historical_contributions" json:"historical_contributions"`

	ContributionSource         ContributionSource `yaml:"contribution_source" json:"contribution_source"`
	MonthlyContribution        decimal.Decimal    `yaml:"monthly_contribution" json:"monthly_contribution"`
	CustomEmployeeContribution *decimal.Decimal   `yaml:"custom_employee_contribution,omitempty" json:"custom_employee_contribution,omitempty"`
	CustomEmployerContribution *decimal.Decimal   `yaml:"custom_employer_contribution,omitempty" json:"custom_employer_contribution,omitempty"`

	TargetIncome                 decimal.Decimal `yaml:"target_income" json:"target_income"`
	RequiredIncomeAfterInflation decimal.Decimal `yaml:"required_income_after_inflation" json:"required_income_after_inflation"`
	ExistingPlanIncome           decimal.Decimal `yaml:"existing_plan_income" json:"existing_plan_income"`
	FinalSalaryIncome            decimal.Decimal `yaml:"final_salary_income" json:"final_salary_income"`
	OtherIncome                  decimal.Decimal `yaml:"other_income" json:"other_income"`

	RequiredCapital         decimal.Decimal `yaml:"required_capital" json:"required_capital"`
	TotalProjectedAssets    decimal.Decimal `yaml:"total_projected_assets" json:"total_projected_assets"`
	CurrentCapitalShortfall decimal.Decimal `yaml:"current_capital_shortfall" json:"current_capital_shortfall"`
	TaxFreeCash             decimal.Decimal `yaml:"tax_free_cash" json:"tax_free_cash"`

	MonthlyFundingCost      decimal.Decimal `yaml:"monthly_funding_cost" json:"monthly_funding_cost"`
	ProposedAPFFunding      decimal.Decimal `yaml:"proposed_apf_funding" json:"proposed_apf_funding"`
	ProposedISAMonthlyValue decimal.Decimal `yaml:"proposed_isa_monthly_value" json:"proposed_isa_monthly_value"`

	ProgressPercentage int           `yaml:"progress_percentage" json:"progress_percentage"`
	Status             FundingStatus `yaml:"status" json:"status"`
}

// Affordability compares a monthly funding cost with estimated take-home pay
type Affordability struct {
	AnnualSalary      decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	MonthlyGross      decimal.Decimal `yaml:"monthly_gross" json:"monthly_gross"`
	AnnualIncomeTax   decimal.Decimal `yaml:"annual_income_tax" json:"annual_income_tax"`
	AnnualNI          decimal.Decimal `yaml:"annual_ni" json:"annual_ni"`
	MonthlyTakeHome   decimal.Decimal `yaml:"monthly_take_home" json:"monthly_take_home"`
	MonthlyCost       decimal.Decimal `yaml:"monthly_cost" json:"monthly_cost"`
	CostPercentage    decimal.Decimal `yaml:"cost_percentage" json:"cost_percentage"`
	ReducedCost       decimal.Decimal `yaml:"reduced_cost" json:"reduced_cost"`
	ReducedPercentage decimal.Decimal `yaml:"reduced_percentage" json:"reduced_percentage"`
	Challenging       bool            `yaml:"challenging" json:"challenging"`
}

// Report bundles everything produced for one configuration run
type Report struct {
	Member        string            `yaml:"member" json:"member"`
	Model         Model             `yaml:"model" json:"model"`
	AsOf          time.Time         `yaml:"as_of" json:"as_of"`
	Parameters    ParameterSet      `yaml:"parameters" json:"parameters"`
	Simple        *SimpleResult     `yaml:"simple,omitempty" json:"simple,omitempty"`
	Detailed      *DetailedForecast `yaml:"detailed,omitempty" json:"detailed,omitempty"`
	Affordability *Affordability    `yaml:"affordability,omitempty" json:"affordability,omitempty"`
}

// Shortfall returns the capital gap of whichever model produced the report
func (r *Report) Shortfall() decimal.Decimal {
	switch {
	case r.Detailed != nil:
		return r.Detailed.CurrentCapitalShortfall
	case r.Simple != nil:
		return r.Simple.CapitalShortfall
	}
	return decimal.Zero
}

// MonthlyCost returns the monthly amount needed to close the gap
func (r *Report) MonthlyCost() decimal.Decimal {
	switch {
	case r.Detailed != nil:
		return r.Detailed.MonthlyFundingCost
	case r.Simple != nil:
		return r.Simple.MonthlySavingsRequired
	}
	return decimal.Zero
}

// Progress returns the funding progress percentage of the report
func (r *Report) Progress() decimal.Decimal {
	switch {
	case r.Detailed != nil:
		return decimal.NewFromInt(int64(r.Detailed.ProgressPercentage))
	case r.Simple != nil:
		return r.Simple.ProgressPercentage
	}
	return decimal.Zero
}
