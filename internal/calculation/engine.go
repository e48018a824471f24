package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
)

// CalculationEngine orchestrates the two projection models for a member profile
type CalculationEngine struct {
	SimpleParams   domain.ParameterSet
	DetailedParams domain.ParameterSet
	TakeHome       *TakeHomeCalculator
	Logger         Logger
	Debug          bool // Enable step-by-step trace logging
}

// NewCalculationEngine creates a new calculation engine with the default parameter sets
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithParameters(domain.ParametersFor(domain.ModelSimple), domain.ParametersFor(domain.ModelDetailed))
}

// NewCalculationEngineWithParameters creates a new calculation engine backed by explicit parameter sets
func NewCalculationEngineWithParameters(simple, detailed domain.ParameterSet) *CalculationEngine {
	return &CalculationEngine{
		SimpleParams:   simple,
		DetailedParams: detailed,
		TakeHome:       NewTakeHomeCalculator(),
		Logger:         NopLogger{},
	}
}

// SetLogger sets the logger for the engine; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) tracef(format string, args ...any) {
	if ce.Debug {
		ce.Logger.Debugf(format, args...)
	}
}

// ResolveParameters returns the parameter set that backs a configuration:
// the model's base set, then file overrides, then the member's target age.
func (ce *CalculationEngine) ResolveParameters(config *domain.Configuration) (domain.ParameterSet, error) {
	model, err := domain.ParseModel(string(config.Model))
	if err != nil {
		return domain.ParameterSet{}, err
	}

	params := ce.DetailedParams
	if model == domain.ModelSimple {
		params = ce.SimpleParams
	}
	params = config.Parameters.Apply(params)
	if config.Member.TargetRetirementAge > 0 {
		params.RetirementAge = config.Member.TargetRetirementAge
	}

	if err := params.Validate(); err != nil {
		return domain.ParameterSet{}, fmt.Errorf("invalid %s parameters: %w", model, err)
	}
	return params, nil
}

// Normalize returns a copy of config with the model and target retirement
// age pinned to the values a run would resolve, so relative what-if changes
// act on what the base run actually used.
func (ce *CalculationEngine) Normalize(config *domain.Configuration) (*domain.Configuration, error) {
	normalized := config.DeepCopy()

	model, err := domain.ParseModel(string(normalized.Model))
	if err != nil {
		return nil, err
	}
	normalized.Model = model

	params, err := ce.ResolveParameters(normalized)
	if err != nil {
		return nil, err
	}
	normalized.Member.TargetRetirementAge = params.RetirementAge
	return normalized, nil
}

// RunSimple runs the simple model for a profile on asOf
func (ce *CalculationEngine) RunSimple(profile domain.MemberProfile, params domain.ParameterSet, asOf time.Time) (*domain.SimpleResult, error) {
	age := dateutil.Age(profile.DateOfBirth, asOf)
	ce.tracef("simple model: %s aged %s, retiring at %d", profile.Name, age, params.RetirementAge)

	if profile.AutoExistingPension {
		ce.Logger.Warnf("auto_existing_pension is ignored by the simple model; using the supplied pension value")
	}

	result, err := NewSimpleModel(params).CalculateRetirementShortfall(age.Years, profile.AnnualSalary(), profile.ExistingPensionValue, params.RetirementAge)
	if err != nil {
		return nil, fmt.Errorf("simple model for %s: %w", profile.Name, err)
	}

	ce.tracef("simple model: target income %s, projected income %s, income shortfall %s",
		result.TargetIncomeAtRetirement.StringFixed(2), result.TotalProjectedIncome.StringFixed(2), result.IncomeShortfall.StringFixed(2))
	return result, nil
}

// RunDetailed runs the detailed model for a profile on asOf
func (ce *CalculationEngine) RunDetailed(profile domain.MemberProfile, params domain.ParameterSet, asOf time.Time) (*domain.DetailedForecast, error) {
	inputs := profile.ContributionInputs()
	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("contribution inputs for %s: %w", profile.Name, err)
	}

	model := NewDetailedModel(params)
	age := dateutil.Age(profile.DateOfBirth, asOf)
	timeLeft := dateutil.YearsUntilRetirement(profile.DateOfBirth, params.RetirementAge, asOf)

	forecast := &domain.DetailedForecast{
		Name:                       profile.Name,
		CurrentAge:                 age.Years,
		Age:                        age,
		RetirementAge:              params.RetirementAge,
		TimeUntilPension:           timeLeft,
		YearsUntilPension:          timeLeft.InYears(),
		DaysUntilPension:           dateutil.DaysUntilRetirement(profile.DateOfBirth, params.RetirementAge, asOf),
		YearsUntilPensionFormatted: dateutil.FormatDuration(timeLeft),
		AnnualSalary:               inputs.AnnualSalary,
		ExistingPensionValue:       inputs.ExistingPensionValue,
		FinalSalaryIncome:          profile.FinalSalaryIncome,
		OtherIncome:                profile.OtherIncome,
	}
	ce.tracef("detailed model: %s aged %s, %s until pension (%d days)", profile.Name, age, forecast.YearsUntilPensionFormatted, forecast.DaysUntilPension)

	if profile.AutoExistingPension {
		est := model.CalculateExistingPensionValue(inputs.AnnualSalary, age.Years)
		forecast.ExistingPensionValue = est.FundValue.Round(0)
		forecast.HistoricalContributions = est.TotalContributions
		forecast.ExistingPensionEstimate = true
		ce.tracef("detailed model: estimated existing pot %s from %s of contributions",
			forecast.ExistingPensionValue.StringFixed(0), est.TotalContributions.StringFixed(2))
	}

	if inputs.UseCustomContributions {
		forecast.ContributionSource = domain.SourceCustom
		forecast.MonthlyContribution = inputs.CustomMonthlyTotal()
		forecast.CustomEmployeeContribution = inputs.CustomEmployeeContribution
		forecast.CustomEmployerContribution = inputs.CustomEmployerContribution
	} else {
		forecast.ContributionSource = domain.SourceAutoEnrolment
		forecast.MonthlyContribution = model.CalculateMonthlyAEContribution(inputs.AnnualSalary)
	}

	shortfall, err := model.ProjectShortfallWithContribution(age.Years, inputs.AnnualSalary, forecast.ExistingPensionValue, forecast.MonthlyContribution)
	if err != nil {
		return nil, fmt.Errorf("detailed model for %s: %w", profile.Name, err)
	}

	forecast.TargetIncome = shortfall.TargetIncome
	forecast.RequiredIncomeAfterInflation = shortfall.TargetIncome.Mul(FractionalCompoundFactor(params.InflationRate, forecast.YearsUntilPension))
	forecast.RequiredCapital = shortfall.RequiredCapital
	forecast.TotalProjectedAssets = shortfall.ProjectedPensionValue
	forecast.ExistingPlanIncome = shortfall.ProjectedPensionValue.Mul(params.ExistingPlanWithdrawalRate)
	forecast.TaxFreeCash = shortfall.ProjectedPensionValue.Mul(params.TaxFreeCashFraction)
	forecast.CurrentCapitalShortfall = shortfall.Shortfall

	forecast.MonthlyFundingCost = shortfall.MonthlyFundingCost
	forecast.ProposedAPFFunding = shortfall.MonthlyFundingCost.Mul(params.LegacyPlanFraction)
	forecast.ProposedISAMonthlyValue = shortfall.MonthlyFundingCost.Sub(forecast.ProposedAPFFunding)

	forecast.ProgressPercentage = FundingProgress(shortfall.ProjectedPensionValue, shortfall.RequiredCapital)
	forecast.Status = ClassifyProgress(forecast.ProgressPercentage)

	ce.tracef("detailed model: required %s, projected %s, shortfall %s, monthly cost %s",
		forecast.RequiredCapital.StringFixed(2), forecast.TotalProjectedAssets.StringFixed(2),
		forecast.CurrentCapitalShortfall.StringFixed(2), forecast.MonthlyFundingCost.StringFixed(2))
	return forecast, nil
}

// Run calculates a complete report for a configuration.
// The reference date is config.AsOf when set, today otherwise.
func (ce *CalculationEngine) Run(config *domain.Configuration) (*domain.Report, error) {
	asOf := dateutil.Today()
	if config.AsOf != nil {
		asOf = dateutil.CalendarDate(*config.AsOf)
	}
	return ce.RunAsOf(config, asOf)
}

// RunAsOf calculates a complete report for a configuration on an explicit reference date
func (ce *CalculationEngine) RunAsOf(config *domain.Configuration, asOf time.Time) (*domain.Report, error) {
	params, err := ce.ResolveParameters(config)
	if err != nil {
		return nil, err
	}
	model, _ := domain.ParseModel(string(config.Model))

	report := &domain.Report{
		Member:     config.Member.Name,
		Model:      model,
		AsOf:       asOf,
		Parameters: params,
	}

	switch model {
	case domain.ModelSimple:
		report.Simple, err = ce.RunSimple(config.Member, params, asOf)
	default:
		report.Detailed, err = ce.RunDetailed(config.Member, params, asOf)
	}
	if err != nil {
		return nil, err
	}

	report.Affordability = ce.TakeHome.CalculateAffordability(config.Member.AnnualSalary(), report.MonthlyCost())
	ce.Logger.Infof("%s model for %s: shortfall %s, monthly cost %s",
		model, config.Member.Name, report.Shortfall().StringFixed(2), report.MonthlyCost().StringFixed(2))
	return report, nil
}
