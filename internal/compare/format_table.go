package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT SHORTFALL COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		8, "Retire",
		numWidth, "Shortfall",
		numWidth, "Monthly",
		numWidth, "Progress"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Shortfall:     %s£%s\n",
				tf.deltaSymbol(alt.ShortfallDiffFromBase), tf.formatDecimal(alt.ShortfallDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Monthly Cost:  %s%s\n",
				tf.deltaSymbol(alt.MonthlyCostDiffFromBase), output.FormatCurrency(alt.MonthlyCostDiffFromBase.Abs())))
			sb.WriteString(fmt.Sprintf("  Progress:      %s%s pts\n",
				tf.deltaSymbol(alt.ProgressDiffFromBase), alt.ProgressDiffFromBase.Abs().StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (" + string(result.Model) + ")"
	}

	return fmt.Sprintf("%-*s %*d %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		8, result.RetirementAge,
		numWidth, "£"+tf.formatDecimal(result.Shortfall),
		numWidth, output.FormatCurrency(result.MonthlyCost),
		numWidth, result.Progress.StringFixed(1)+"%")
}

// formatDecimal formats an absolute amount for display in thousands or millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	d = d.Abs()
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix of a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary of shortfall changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: £%s | ", tf.formatDecimal(compSet.BaseResult.Shortfall)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.ShortfallDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s£%s", tf.deltaSymbol(alt.ShortfallDiffFromBase), tf.formatDecimal(alt.ShortfallDiffFromBase))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
