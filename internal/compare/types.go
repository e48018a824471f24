package compare

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan with its headline metrics
type ComparisonResult struct {
	ScenarioName string         `json:"scenarioName"`
	Description  string         `json:"description"`
	Report       *domain.Report `json:"-"`

	// Key Metrics
	Model         domain.Model    `json:"model"`
	RetirementAge int             `json:"retirementAge"`
	Shortfall     decimal.Decimal `json:"shortfall"`
	MonthlyCost   decimal.Decimal `json:"monthlyCost"`
	Progress      decimal.Decimal `json:"progress"`

	// Comparison to Base
	ShortfallDiffFromBase   decimal.Decimal `json:"shortfallDiffFromBase"`
	MonthlyCostDiffFromBase decimal.Decimal `json:"monthlyCostDiffFromBase"`
	ProgressDiffFromBase    decimal.Decimal `json:"progressDiffFromBase"`
}

// ComparisonSet represents a base plan and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a report
func (mc *MetricsCalculator) CalculateMetrics(name string, report *domain.Report) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		Report:        report,
		Model:         report.Model,
		RetirementAge: report.Parameters.RetirementAge,
		Shortfall:     report.Shortfall(),
		MonthlyCost:   report.MonthlyCost(),
		Progress:      report.Progress(),
	}
}

// CalculateComparison computes deltas between a plan and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ShortfallDiffFromBase = scenario.Shortfall.Sub(base.Shortfall)
	scenario.MonthlyCostDiffFromBase = scenario.MonthlyCost.Sub(base.MonthlyCost)
	scenario.ProgressDiffFromBase = scenario.Progress.Sub(base.Progress)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	smallestGap := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Shortfall.LessThan(smallestGap.Shortfall) {
			smallestGap = alt
		}
	}
	if smallestGap != base {
		reduction := base.Shortfall.Sub(smallestGap.Shortfall)
		recommendations = append(recommendations,
			fmt.Sprintf("Smallest Gap: %s reduces the capital shortfall by %s", smallestGap.ScenarioName, output.FormatWholeCurrency(reduction)))
	}

	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthlyCost.LessThan(cheapest.MonthlyCost) {
			cheapest = alt
		}
	}
	if cheapest != base {
		saving := base.MonthlyCost.Sub(cheapest.MonthlyCost)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Monthly Cost: %s needs %s less a month", cheapest.ScenarioName, output.FormatCurrency(saving)))
	}

	for _, alt := range compSet.AlternativeResults {
		if base.Shortfall.IsPositive() && !alt.Shortfall.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("Fully Funded: %s closes the gap entirely", alt.ScenarioName))
		}
	}

	return recommendations
}
