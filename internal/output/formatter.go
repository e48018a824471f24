package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// formatterFunc adapts a plain function to the Formatter interface
type formatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f formatterFunc) Name() string { return f.ID }

func (f formatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"yaml":    YAMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name
func GetFormatterByName(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (valid: %s)", name, strings.Join(FormatterNames(), ", "))
	}
	return f, nil
}

// FormatterNames lists the registered formatter names in sorted order
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders report with f and writes it to a timestamped file in the working directory
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("pension_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats an amount as pounds with thousands separators, e.g. £12,345.67
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, pence, _ := strings.Cut(fixed, ".")
	return sign + "£" + groupThousands(whole) + "." + pence
}

// FormatWholeCurrency formats an amount rounded to whole pounds, e.g. £12,346
func FormatWholeCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "£" + groupThousands(amount.StringFixed(0))
}

// FormatPercentage formats a percentage value, e.g. 12.50%
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.025 -> 2.50%
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
