package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Description",
		"Model",
		"Retirement Age",
		"Shortfall",
		"Monthly Cost",
		"Progress",
		"Shortfall Diff from Base",
		"Monthly Cost Diff from Base",
		"Progress Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Description,
		string(result.Model),
		strconv.Itoa(result.RetirementAge),
		result.Shortfall.StringFixed(2),
		result.MonthlyCost.StringFixed(2),
		result.Progress.StringFixed(2),
		result.ShortfallDiffFromBase.StringFixed(2),
		result.MonthlyCostDiffFromBase.StringFixed(2),
		result.ProgressDiffFromBase.StringFixed(2),
	}
}
