package output

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
)

// Assumptions lists the modelling assumptions behind a report's parameter set
func Assumptions(model domain.Model, p domain.ParameterSet) []string {
	lines := []string{
		fmt.Sprintf("Retirement age: %d", p.RetirementAge),
		fmt.Sprintf("Target income: %s of salary", FormatRate(p.ReplacementRatio)),
		fmt.Sprintf("Inflation: %s annually", FormatRate(p.InflationRate)),
		fmt.Sprintf("State pension: %s a year in today's money", FormatWholeCurrency(p.StatePensionAnnual)),
	}

	switch model {
	case domain.ModelSimple:
		lines = append(lines,
			fmt.Sprintf("Pot growth: %s, compounded annually", FormatRate(p.GrowthRate)),
			fmt.Sprintf("Drawdown: %s of the pot each year", FormatRate(p.DrawdownRate)),
		)
	default:
		ae := p.AutoEnrolment
		lines = append(lines,
			fmt.Sprintf("Pot growth: %s, compounded monthly", FormatRate(p.GrowthRate)),
			fmt.Sprintf("Required capital: %sx target income", p.WithdrawalMultiple.String()),
			fmt.Sprintf("Auto-Enrolment: %s of earnings between %s and %s",
				FormatRate(ae.ContributionRate), FormatWholeCurrency(ae.LowerEarningsLimit), FormatWholeCurrency(ae.UpperEarningsLimit)),
		)
	}
	return lines
}
