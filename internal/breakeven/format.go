package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single target
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Target:          %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED CHANGE\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%s\n\n", tf.formatLever(result)))

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Base Shortfall:  %s\n", tf.formatCurrency(result.BaseShortfall)))
	sb.WriteString(fmt.Sprintf("Shortfall:       %s\n", tf.formatCurrency(result.Shortfall)))
	sb.WriteString(fmt.Sprintf("Monthly Cost:    %s\n", tf.formatCurrency(result.MonthlyCost)))
	sb.WriteString(fmt.Sprintf("Progress:        %s%%\n", result.Progress.StringFixed(1)))

	return sb.String()
}

// FormatMulti formats the results of every target
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS FOR ALL TARGETS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Base Shortfall: %s\n\n", tf.formatCurrency(result.BaseShortfall)))

	sb.WriteString(fmt.Sprintf("%-16s %-26s %14s\n", "Target", "Required Change", "Shortfall"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for i := range result.Results {
		res := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-16s %-26s %14s\n",
			res.Target,
			tf.formatLever(res),
			"£"+tf.formatShort(res.Shortfall)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single target
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for every target
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatLever(result *SolveResult) string {
	prefix := ""
	if !result.Success {
		prefix = "not reached by "
	}
	switch {
	case result.RetirementAge != nil:
		return fmt.Sprintf("%sretire at %d", prefix, *result.RetirementAge)
	case result.LumpSum != nil:
		return fmt.Sprintf("%slump sum %s", prefix, tf.formatCurrency(*result.LumpSum))
	case result.MonthlyContribution != nil:
		return fmt.Sprintf("%s%s a month", prefix, tf.formatCurrency(*result.MonthlyContribution))
	case result.GrowthRate != nil:
		return fmt.Sprintf("%s%s%% growth", prefix, result.GrowthRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	return "none"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Gap closed"
	}
	return "⚠ Gap not closed within constraints"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return output.FormatCurrency(d)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
