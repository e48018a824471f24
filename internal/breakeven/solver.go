package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/pgap/internal/calculation"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/rgehrsitz/pgap/internal/transform"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the smallest change to one lever that closes the capital shortfall
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// leverFunc builds the transform that sets a lever to value
type leverFunc func(value decimal.Decimal) transform.ProfileTransform

func funded(report *domain.Report) bool {
	return !report.Shortfall().IsPositive()
}

func resolveAsOf(req SolveRequest) time.Time {
	switch {
	case !req.AsOf.IsZero():
		return dateutil.CalendarDate(req.AsOf)
	case req.Config != nil && req.Config.AsOf != nil:
		return dateutil.CalendarDate(*req.Config.AsOf)
	}
	return dateutil.Today()
}

// Solve runs the solver for a single target
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.Config == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "configuration cannot be nil"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	asOf := resolveAsOf(req)
	base, err := s.CalcEngine.Normalize(req.Config)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to prepare configuration", Cause: err}
	}
	if req.Target == TargetContribution && base.Model != domain.ModelDetailed {
		return nil, &BreakEvenError{Operation: "solve", Message: "the contribution target needs the detailed model"}
	}

	baseReport, err := s.CalcEngine.RunAsOf(base, asOf)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base configuration", Cause: err}
	}

	result := &SolveResult{
		Target:        req.Target,
		BaseShortfall: baseReport.Shortfall(),
	}

	if funded(baseReport) {
		result.Success = true
		result.ConvergenceInfo = "already fully funded"
		result.fill(baseReport)
		return result, nil
	}

	switch req.Target {
	case TargetRetirementAge:
		err = s.solveRetirementAge(ctx, base, asOf, req.Constraints.MaxRetirementAge, result)
	case TargetLumpSum:
		err = s.solveBisect(ctx, base, asOf, req.Constraints.MaxLumpSum, s.Options.AmountPrecision, func(v decimal.Decimal) transform.ProfileTransform {
			return &transform.AddLumpSum{Amount: v}
		}, func(v decimal.Decimal) { result.LumpSum = &v }, result)
	case TargetContribution:
		err = s.solveBisect(ctx, base, asOf, req.Constraints.MaxContribution, s.Options.AmountPrecision, func(v decimal.Decimal) transform.ProfileTransform {
			return &transform.SetCustomContributions{Employee: v, Employer: decimal.Zero}
		}, func(v decimal.Decimal) { result.MonthlyContribution = &v }, result)
	case TargetGrowthRate:
		err = s.solveBisect(ctx, base, asOf, req.Constraints.MaxGrowthRate, s.Options.RatePrecision, func(v decimal.Decimal) transform.ProfileTransform {
			return &transform.ModifyGrowth{NewRate: v}
		}, func(v decimal.Decimal) { result.GrowthRate = &v }, result)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// evaluate applies one lever transform to base and runs it
func (s *Solver) evaluate(base *domain.Configuration, asOf time.Time, tr transform.ProfileTransform) (*domain.Report, error) {
	modified, err := transform.ApplyTransforms(base, []transform.ProfileTransform{tr})
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to apply " + tr.Name(), Cause: err}
	}
	report, err := s.CalcEngine.RunAsOf(modified, asOf)
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to calculate " + tr.Name(), Cause: err}
	}
	return report, nil
}

// solveRetirementAge scans later retirement ages one year at a time
func (s *Solver) solveRetirementAge(ctx context.Context, base *domain.Configuration, asOf time.Time, maxAge int, result *SolveResult) error {
	var last *domain.Report
	lastAge := base.Member.TargetRetirementAge

	for age := base.Member.TargetRetirementAge + 1; age <= maxAge; age++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Iterations++

		report, err := s.evaluate(base, asOf, &transform.SetRetirementAge{Age: age})
		if err != nil {
			return err
		}
		last, lastAge = report, age

		if funded(report) {
			result.Success = true
			result.RetirementAge = &lastAge
			result.ConvergenceInfo = fmt.Sprintf("Evaluated %d retirement ages", result.Iterations)
			result.fill(report)
			return nil
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("no retirement age up to %d closes the gap", maxAge)
	if last != nil {
		result.RetirementAge = &lastAge
		result.fill(last)
	}
	return nil
}

// solveBisect finds the smallest lever value in (0, hi] that fully funds the plan.
// Shortfall must fall monotonically as the lever rises.
func (s *Solver) solveBisect(
	ctx context.Context,
	base *domain.Configuration,
	asOf time.Time,
	hi, precision decimal.Decimal,
	lever leverFunc,
	set func(decimal.Decimal),
	result *SolveResult,
) error {
	hiReport, err := s.evaluate(base, asOf, lever(hi))
	if err != nil {
		return err
	}
	result.Iterations++

	if !funded(hiReport) {
		set(hi)
		result.fill(hiReport)
		result.ConvergenceInfo = fmt.Sprintf("even %s does not close the gap", hi.String())
		return nil
	}

	lo := decimal.Zero
	for result.Iterations < s.Options.MaxIterations && hi.Sub(lo).GreaterThanOrEqual(precision) {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		report, err := s.evaluate(base, asOf, lever(mid))
		if err != nil {
			return err
		}
		if funded(report) {
			hi, hiReport = mid, report
		} else {
			lo = mid
		}
	}

	result.Success = true
	if hi.Sub(lo).GreaterThanOrEqual(precision) {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
	} else {
		result.ConvergenceInfo = "Binary search converged"
	}
	set(hi)
	result.fill(hiReport)
	return nil
}

func (r *SolveResult) fill(report *domain.Report) {
	r.Report = report
	r.Shortfall = report.Shortfall()
	r.MonthlyCost = report.MonthlyCost()
	r.Progress = report.Progress()
}

// SolveAll runs every target that applies to the configuration's model
func (s *Solver) SolveAll(ctx context.Context, config *domain.Configuration, constraints Constraints, asOf time.Time) (*MultiResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	multi := &MultiResult{}
	for _, target := range AllTargets {
		result, err := s.Solve(ctx, SolveRequest{
			Config:      config,
			Target:      target,
			Constraints: constraints,
			AsOf:        asOf,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// Targets that do not apply to this configuration are skipped
			s.CalcEngine.Logger.Debugf("break-even %s skipped: %v", target, err)
			continue
		}
		multi.BaseShortfall = result.BaseShortfall
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no target could be solved",
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

// generateRecommendations phrases each successful result as an action
func generateRecommendations(multi *MultiResult) []string {
	if !multi.BaseShortfall.IsPositive() {
		return []string{"Already fully funded: no change is needed"}
	}

	var recommendations []string
	for _, r := range multi.Results {
		if !r.Success {
			continue
		}
		switch {
		case r.RetirementAge != nil:
			recommendations = append(recommendations, fmt.Sprintf("Retire at %d", *r.RetirementAge))
		case r.LumpSum != nil:
			recommendations = append(recommendations, fmt.Sprintf("Pay a lump sum of %s into the pension now", output.FormatWholeCurrency(*r.LumpSum)))
		case r.MonthlyContribution != nil:
			recommendations = append(recommendations, fmt.Sprintf("Contribute %s a month", output.FormatCurrency(*r.MonthlyContribution)))
		case r.GrowthRate != nil:
			recommendations = append(recommendations, fmt.Sprintf("Achieve %s%% annual growth", r.GrowthRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
		}
	}
	return recommendations
}
