package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildDetailedReport() *domain.Report {
	employee := decimal.NewFromInt(200)
	employer := decimal.NewFromInt(150)
	return &domain.Report{
		Member:     "Jane Smith",
		Model:      domain.ModelDetailed,
		AsOf:       time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Parameters: domain.DetailedParameters(),
		Detailed: &domain.DetailedForecast{
			Name:                       "Jane Smith",
			CurrentAge:                 38,
			Age:                        dateutil.AgeDuration{Years: 38, Months: 6},
			RetirementAge:              67,
			TimeUntilPension:           dateutil.AgeDuration{Years: 28, Months: 6},
			YearsUntilPensionFormatted: "28 years and 6 months",
			DaysUntilPension:           10406,
			AnnualSalary:               decimal.NewFromInt(45000),
			ExistingPensionValue:       decimal.NewFromInt(38000),
			ContributionSource:         domain.SourceCustom,
			MonthlyContribution:        decimal.NewFromInt(350),
			CustomEmployeeContribution: &employee,
			CustomEmployerContribution: &employer,
			TargetIncome:               decimal.NewFromInt(27000),
			RequiredCapital:            decimal.NewFromInt(675000),
			TotalProjectedAssets:       decimal.NewFromInt(540000),
			CurrentCapitalShortfall:    decimal.NewFromInt(135000),
			MonthlyFundingCost:         decimal.RequireFromString("189.5"),
			ProposedAPFFunding:         decimal.RequireFromString("132.65"),
			ProposedISAMonthlyValue:    decimal.RequireFromString("56.85"),
			ProgressPercentage:         80,
			Status:                     domain.StatusClose,
		},
		Affordability: &domain.Affordability{
			MonthlyTakeHome:   decimal.RequireFromString("2914.03"),
			MonthlyCost:       decimal.RequireFromString("189.5"),
			CostPercentage:    decimal.RequireFromString("6.5"),
			ReducedCost:       decimal.RequireFromString("132.65"),
			ReducedPercentage: decimal.RequireFromString("4.55"),
		},
	}
}

func buildSimpleReport() *domain.Report {
	return &domain.Report{
		Member:     "Sam",
		Model:      domain.ModelSimple,
		AsOf:       time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Parameters: domain.SimpleParameters(),
		Simple: &domain.SimpleResult{
			CurrentAge:               35,
			TargetRetirementAge:      67,
			YearsToRetirement:        32,
			IncomeShortfall:          decimal.NewFromInt(26000),
			CapitalShortfall:         decimal.RequireFromString("742857.14"),
			MonthlySavingsRequired:   decimal.RequireFromString("1001.27"),
			TargetIncomeAtRetirement: decimal.NewFromInt(55096),
			ProgressPercentage:       decimal.RequireFromString("52.5"),
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := formatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(buildSimpleReport())
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "csv", "yaml", "JSON"} {
		f, err := GetFormatterByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := GetFormatterByName("html")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: html")
	assert.Equal(t, []string{"console", "csv", "json", "yaml"}, FormatterNames())
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	formatter := formatterFunc{ID: "t", F: func(*domain.Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(formatter, buildSimpleReport(), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "pension_report_")
	assert.Contains(t, filename, ".txt")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := formatterFunc{ID: "e", F: func(*domain.Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err = WriteFormatted(failing, buildSimpleReport(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
		whole    string
	}{
		{"0", "£0.00", "£0"},
		{"12.5", "£12.50", "£13"},
		{"999.999", "£1,000.00", "£1,000"},
		{"1234567.891", "£1,234,567.89", "£1,234,568"},
		{"-45000", "-£45,000.00", "-£45,000"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			d := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.expected, FormatCurrency(d))
			assert.Equal(t, tt.whole, FormatWholeCurrency(d))
		})
	}

	assert.Equal(t, "12.50%", FormatPercentage(decimal.RequireFromString("12.5")))
	assert.Equal(t, "2.50%", FormatRate(decimal.RequireFromString("0.025")))
}

func TestConsoleFormatter_Detailed(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildDetailedReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "RETIREMENT SHORTFALL ESTIMATE")
	assert.Contains(t, content, "Jane Smith")
	assert.Contains(t, content, "28 years and 6 months (10406 days)")
	assert.Contains(t, content, "£675,000.00")
	assert.Contains(t, content, "£135,000.00")
	assert.Contains(t, content, "Total (custom)")
	assert.Contains(t, content, "Close to target")
	assert.Contains(t, content, "80%")
	assert.Contains(t, content, "Looks affordable.")
	assert.Contains(t, content, "Required capital: 25x target income")
}

func TestConsoleFormatter_Simple(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildSimpleReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "32 years away")
	assert.Contains(t, content, "£1,001.27")
	assert.Contains(t, content, "52.50%")
	assert.Contains(t, content, "falls short")
	assert.Contains(t, content, "compounded annually")
	assert.NotContains(t, content, "AFFORDABILITY")
}

func TestConsoleFormatter_SectionSpacing(t *testing.T) {
	for _, report := range []*domain.Report{buildDetailedReport(), buildSimpleReport()} {
		out, err := ConsoleFormatter{}.Format(report)
		require.NoError(t, err)

		lines := strings.Split(string(out), "\n")
		for i, line := range lines {
			if line != "" {
				assert.NotEmpty(t, strings.TrimSpace(line), "line %d is padding only: %q", i+1, line)
			}
		}
		assert.Contains(t, string(out), "\n\nKEY ASSUMPTIONS\n")
	}
}

func TestConsoleFormatter_NilReport(t *testing.T) {
	_, err := ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestProgressBar_Render(t *testing.T) {
	bar := NewProgressBar(150, domain.StatusOnTrack)
	bar.Width = 10
	assert.Contains(t, bar.Render(), "150%")

	bar = NewProgressBar(-5, domain.StatusGap)
	bar.Width = 10
	assert.Contains(t, bar.Render(), "-5%")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildDetailedReport())
	require.NoError(t, err)

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.NotNil(t, decoded.Detailed)
	assert.True(t, decimal.NewFromInt(135000).Equal(decoded.Detailed.CurrentCapitalShortfall))
	assert.Equal(t, domain.StatusClose, decoded.Detailed.Status)
	assert.Nil(t, decoded.Simple)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildSimpleReport())
	require.NoError(t, err)

	var decoded domain.Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.NotNil(t, decoded.Simple)
	assert.Equal(t, 32, decoded.Simple.YearsToRetirement)
	assert.True(t, decimal.RequireFromString("1001.27").Equal(decoded.Simple.MonthlySavingsRequired))
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildDetailedReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"Metric", "Value"}, records[0])

	values := map[string]string{}
	for _, r := range records[1:] {
		values[r[0]] = r[1]
	}
	assert.Equal(t, "135000.00", values["CurrentCapitalShortfall"])
	assert.Equal(t, "custom", values["ContributionSource"])
	assert.Equal(t, "2026-10-18", values["AsOf"])
	assert.Equal(t, "false", values["Challenging"])
}

func TestFormatAffordability(t *testing.T) {
	content := string(FormatAffordability(buildDetailedReport().Affordability))
	assert.Contains(t, content, "AFFORDABILITY")
	assert.Contains(t, content, "£2,914.03")
	assert.Contains(t, content, "6.50% of take-home")

	assert.Empty(t, FormatAffordability(nil))
}
