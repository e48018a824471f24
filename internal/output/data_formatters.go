package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the full report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// YAMLFormatter renders the full report as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.Report) ([]byte, error) {
	return yaml.Marshal(report)
}

// CSVFormatter renders the headline figures as metric,value rows
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value"}); err != nil {
		return nil, err
	}

	for _, r := range reportRows(report) {
		if err := w.Write(r); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func reportRows(report *domain.Report) [][]string {
	rows := [][]string{
		{"Member", report.Member},
		{"Model", string(report.Model)},
		{"AsOf", report.AsOf.Format("2006-01-02")},
	}

	if s := report.Simple; s != nil {
		rows = append(rows,
			[]string{"CurrentAge", strconv.Itoa(s.CurrentAge)},
			[]string{"TargetRetirementAge", strconv.Itoa(s.TargetRetirementAge)},
			[]string{"YearsToRetirement", strconv.Itoa(s.YearsToRetirement)},
			[]string{"TargetIncomeAtRetirement", money(s.TargetIncomeAtRetirement)},
			[]string{"StatePensionAtRetirement", money(s.StatePensionAtRetirement)},
			[]string{"ProjectedExistingPension", money(s.ProjectedExistingPension)},
			[]string{"IncomeFromExistingPension", money(s.IncomeFromExistingPension)},
			[]string{"TotalProjectedIncome", money(s.TotalProjectedIncome)},
			[]string{"IncomeShortfall", money(s.IncomeShortfall)},
			[]string{"CapitalShortfall", money(s.CapitalShortfall)},
			[]string{"MonthlySavingsRequired", money(s.MonthlySavingsRequired)},
			[]string{"ProgressPercentage", s.ProgressPercentage.StringFixed(2)},
			[]string{"IsOnTrack", strconv.FormatBool(s.IsOnTrack)},
		)
	}

	if f := report.Detailed; f != nil {
		rows = append(rows,
			[]string{"CurrentAge", strconv.Itoa(f.CurrentAge)},
			[]string{"RetirementAge", strconv.Itoa(f.RetirementAge)},
			[]string{"YearsUntilPension", f.YearsUntilPensionFormatted},
			[]string{"DaysUntilPension", strconv.Itoa(f.DaysUntilPension)},
			[]string{"ExistingPensionValue", money(f.ExistingPensionValue)},
			[]string{"ContributionSource", string(f.ContributionSource)},
			[]string{"MonthlyContribution", money(f.MonthlyContribution)},
			[]string{"TargetIncome", money(f.TargetIncome)},
			[]string{"RequiredIncomeAfterInflation", money(f.RequiredIncomeAfterInflation)},
			[]string{"RequiredCapital", money(f.RequiredCapital)},
			[]string{"TotalProjectedAssets", money(f.TotalProjectedAssets)},
			[]string{"ExistingPlanIncome", money(f.ExistingPlanIncome)},
			[]string{"TaxFreeCash", money(f.TaxFreeCash)},
			[]string{"CurrentCapitalShortfall", money(f.CurrentCapitalShortfall)},
			[]string{"MonthlyFundingCost", money(f.MonthlyFundingCost)},
			[]string{"ProposedAPFFunding", money(f.ProposedAPFFunding)},
			[]string{"ProposedISAMonthlyValue", money(f.ProposedISAMonthlyValue)},
			[]string{"ProgressPercentage", strconv.Itoa(f.ProgressPercentage)},
			[]string{"Status", string(f.Status)},
		)
	}

	if a := report.Affordability; a != nil {
		rows = append(rows,
			[]string{"MonthlyTakeHome", money(a.MonthlyTakeHome)},
			[]string{"CostPercentage", a.CostPercentage.StringFixed(2)},
			[]string{"ReducedCost", money(a.ReducedCost)},
			[]string{"ReducedPercentage", a.ReducedPercentage.StringFixed(2)},
			[]string{"Challenging", strconv.FormatBool(a.Challenging)},
		)
	}
	return rows
}
