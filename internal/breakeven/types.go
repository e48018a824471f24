package breakeven

import (
	"time"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget names the single lever the solver moves to close the gap
type SolveTarget string

const (
	TargetRetirementAge SolveTarget = "retirement_age"
	TargetLumpSum       SolveTarget = "lump_sum"
	TargetContribution  SolveTarget = "contribution"
	TargetGrowthRate    SolveTarget = "growth_rate"
)

// AllTargets lists every target in the order SolveAll tries them
var AllTargets = []SolveTarget{TargetRetirementAge, TargetLumpSum, TargetContribution, TargetGrowthRate}

// ParseTarget converts a user supplied target name
func ParseTarget(s string) (SolveTarget, error) {
	for _, t := range AllTargets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   "unknown target " + s + " (valid: retirement_age, lump_sum, contribution, growth_rate)",
	}
}

// Constraints bound the search range of each target
type Constraints struct {
	MaxRetirementAge int             `json:"max_retirement_age"`
	MaxLumpSum       decimal.Decimal `json:"max_lump_sum"`
	MaxContribution  decimal.Decimal `json:"max_contribution"`
	MaxGrowthRate    decimal.Decimal `json:"max_growth_rate"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	return Constraints{
		MaxRetirementAge: 75,
		MaxLumpSum:       decimal.NewFromInt(2000000),
		MaxContribution:  decimal.NewFromInt(10000),
		MaxGrowthRate:    decimal.NewFromFloat(0.20),
	}
}

// Validate checks the constraints are usable
func (c *Constraints) Validate() error {
	if c.MaxRetirementAge <= 0 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_retirement_age must be positive"}
	}
	if !c.MaxLumpSum.IsPositive() || !c.MaxContribution.IsPositive() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_lump_sum and max_contribution must be positive"}
	}
	if !c.MaxGrowthRate.IsPositive() || c.MaxGrowthRate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_growth_rate must be between 0 and 0.20"}
	}
	return nil
}

// SolveRequest defines one solver run
type SolveRequest struct {
	Config      *domain.Configuration
	Target      SolveTarget
	Constraints Constraints
	// AsOf pins the reference date; zero uses the configuration's date or today
	AsOf time.Time
}

// SolveResult reports the smallest change on one lever that closes the gap
type SolveResult struct {
	Target          SolveTarget `json:"target"`
	Success         bool        `json:"success"`
	Iterations      int         `json:"iterations"`
	ConvergenceInfo string      `json:"convergence_info"`

	// Exactly one of these is set, matching Target
	RetirementAge       *int             `json:"retirement_age,omitempty"`
	LumpSum             *decimal.Decimal `json:"lump_sum,omitempty"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution,omitempty"`
	GrowthRate          *decimal.Decimal `json:"growth_rate,omitempty"`

	BaseShortfall decimal.Decimal `json:"base_shortfall"`
	Shortfall     decimal.Decimal `json:"shortfall"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
	Progress      decimal.Decimal `json:"progress"`

	Report *domain.Report `json:"-"`
}

// MultiResult collects one result per target
type MultiResult struct {
	BaseShortfall   decimal.Decimal `json:"base_shortfall"`
	Results         []SolveResult   `json:"results"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations   int             // Maximum bisection steps
	AmountPrecision decimal.Decimal // Stop when the money interval is narrower than this
	RatePrecision   decimal.Decimal // Stop when the rate interval is narrower than this
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:   60,
		AmountPrecision: decimal.NewFromInt(1),
		RatePrecision:   decimal.NewFromFloat(0.0001),
	}
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
