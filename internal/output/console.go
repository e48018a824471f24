package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
)

// ConsoleFormatter renders a styled, human readable report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, TitleStyle.Render("RETIREMENT SHORTFALL ESTIMATE"))
	row(&buf, "Member", report.Member)
	row(&buf, "Model", string(report.Model))
	row(&buf, "As of", report.AsOf.Format("2 January 2006"))

	switch {
	case report.Simple != nil:
		writeSimple(&buf, report.Simple)
	case report.Detailed != nil:
		writeDetailed(&buf, report.Detailed)
	}

	if report.Affordability != nil {
		writeAffordability(&buf, report.Affordability)
	}

	section(&buf, "KEY ASSUMPTIONS")
	for _, a := range Assumptions(report.Model, report.Parameters) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

// section writes a blank line and a styled heading
func section(buf *bytes.Buffer, title string) {
	buf.WriteByte('\n')
	fmt.Fprintln(buf, SectionStyle.Render(title))
}

func row(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%s%s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value))
}

func writeSimple(buf *bytes.Buffer, r *domain.SimpleResult) {
	section(buf, "YOUR SITUATION")
	row(buf, "Current age", fmt.Sprintf("%d", r.CurrentAge))
	row(buf, "Target retirement age", fmt.Sprintf("%d (%d years away)", r.TargetRetirementAge, r.YearsToRetirement))
	row(buf, "Current salary", FormatCurrency(r.CurrentSalary))
	row(buf, "Existing pension", FormatCurrency(r.ExistingPensionValue))

	section(buf, "INCOME AT RETIREMENT (per year)")
	row(buf, "Target income", FormatCurrency(r.TargetIncomeAtRetirement))
	row(buf, "State pension", FormatCurrency(r.StatePensionAtRetirement))
	row(buf, "From existing pension", FormatCurrency(r.IncomeFromExistingPension))
	row(buf, "Total projected income", FormatCurrency(r.TotalProjectedIncome))
	row(buf, "Projected pension pot", FormatCurrency(r.ProjectedExistingPension))

	section(buf, "SHORTFALL")
	row(buf, "Income shortfall", FormatCurrency(r.IncomeShortfall))
	row(buf, "Capital shortfall", FormatCurrency(r.CapitalShortfall))
	row(buf, "Monthly savings required", FormatCurrency(r.MonthlySavingsRequired))
	row(buf, "Progress", FormatPercentage(r.ProgressPercentage))
	if r.IsOnTrack {
		fmt.Fprintln(buf, StatusStyle(domain.StatusOnTrack).Render("You are on track for your target income."))
	} else {
		fmt.Fprintln(buf, StatusStyle(domain.StatusGap).Render("Your projected income falls short of your target."))
	}
}

func writeDetailed(buf *bytes.Buffer, f *domain.DetailedForecast) {
	section(buf, "YOUR SITUATION")
	row(buf, "Current age", fmt.Sprintf("%d years %d months", f.Age.Years, f.Age.Months))
	row(buf, "Pension age", fmt.Sprintf("%d", f.RetirementAge))
	row(buf, "Time until pension", fmt.Sprintf("%s (%d days)", f.YearsUntilPensionFormatted, f.DaysUntilPension))
	row(buf, "Annual salary", FormatCurrency(f.AnnualSalary))
	existing := FormatCurrency(f.ExistingPensionValue)
	if f.ExistingPensionEstimate {
		existing += " (estimated)"
	}
	row(buf, "Existing pension", existing)
	if f.ExistingPensionEstimate {
		fmt.Fprintln(buf, NoteStyle.Render(fmt.Sprintf("  estimated from %s of contributions since age 21", FormatCurrency(f.HistoricalContributions))))
	}

	section(buf, "CONTRIBUTIONS (per month)")
	switch f.ContributionSource {
	case domain.SourceCustom:
		if f.CustomEmployeeContribution != nil && f.CustomEmployerContribution != nil {
			row(buf, "Employee", FormatCurrency(*f.CustomEmployeeContribution))
			row(buf, "Employer", FormatCurrency(*f.CustomEmployerContribution))
		}
		row(buf, "Total (custom)", FormatCurrency(f.MonthlyContribution))
	default:
		row(buf, "Total (Auto-Enrolment)", FormatCurrency(f.MonthlyContribution))
	}

	section(buf, "RETIREMENT INCOME")
	row(buf, "Target income (today)", FormatCurrency(f.TargetIncome))
	row(buf, "Target income (inflated)", FormatCurrency(f.RequiredIncomeAfterInflation))
	row(buf, "Income from projected pot", FormatCurrency(f.ExistingPlanIncome))
	if f.FinalSalaryIncome.IsPositive() {
		row(buf, "Final salary pension", FormatCurrency(f.FinalSalaryIncome))
	}
	if f.OtherIncome.IsPositive() {
		row(buf, "Other income", FormatCurrency(f.OtherIncome))
	}

	section(buf, "CAPITAL")
	row(buf, "Required capital", FormatCurrency(f.RequiredCapital))
	row(buf, "Projected pension pot", FormatCurrency(f.TotalProjectedAssets))
	row(buf, "Tax-free cash available", FormatCurrency(f.TaxFreeCash))
	row(buf, "Capital shortfall", FormatCurrency(f.CurrentCapitalShortfall))

	section(buf, "FUNDING")
	row(buf, "Monthly funding cost", FormatCurrency(f.MonthlyFundingCost))
	if f.MonthlyFundingCost.IsPositive() {
		row(buf, "  Pension (APF)", FormatCurrency(f.ProposedAPFFunding))
		row(buf, "  ISA", FormatCurrency(f.ProposedISAMonthlyValue))
	}
	fmt.Fprintln(buf, NewProgressBar(f.ProgressPercentage, f.Status).Render())
	fmt.Fprintln(buf, StatusStyle(f.Status).Render(StatusLabel(f.Status)))
}

func writeAffordability(buf *bytes.Buffer, a *domain.Affordability) {
	section(buf, "AFFORDABILITY")
	row(buf, "Monthly gross pay", FormatCurrency(a.MonthlyGross))
	row(buf, "Income tax (annual)", FormatCurrency(a.AnnualIncomeTax))
	row(buf, "National Insurance (annual)", FormatCurrency(a.AnnualNI))
	row(buf, "Monthly take-home pay", FormatCurrency(a.MonthlyTakeHome))
	row(buf, "Monthly cost", fmt.Sprintf("%s (%s of take-home)", FormatCurrency(a.MonthlyCost), FormatPercentage(a.CostPercentage)))
	row(buf, "Reduced-cost alternative", fmt.Sprintf("%s (%s of take-home)", FormatCurrency(a.ReducedCost), FormatPercentage(a.ReducedPercentage)))
	if a.Challenging {
		fmt.Fprintln(buf, StatusStyle(domain.StatusGap).Render("May be challenging: more than 10% of take-home pay."))
	} else {
		fmt.Fprintln(buf, StatusStyle(domain.StatusOnTrack).Render("Looks affordable."))
	}
}

// FormatAffordability renders only the affordability section
func FormatAffordability(a *domain.Affordability) []byte {
	var buf bytes.Buffer
	if a != nil {
		writeAffordability(&buf, a)
	}
	return buf.Bytes()
}
