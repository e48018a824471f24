package dateutil

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		asOf time.Time
		want AgeDuration
	}{
		{"exact birthday", date(1990, 5, 15), date(2025, 5, 15), AgeDuration{35, 0}},
		{"day before birthday", date(1990, 5, 15), date(2025, 5, 14), AgeDuration{34, 11}},
		{"month end shorter than birth day", date(1990, 5, 31), date(2025, 6, 30), AgeDuration{35, 0}},
		{"month borrow then no day borrow", date(1990, 12, 10), date(2025, 1, 20), AgeDuration{34, 1}},
		{"month borrow then day borrow", date(1990, 12, 20), date(2025, 1, 10), AgeDuration{34, 0}},
		{"day borrow forces year borrow", date(1990, 1, 20), date(2025, 1, 10), AgeDuration{34, 11}},
		{"same day", date(1983, 10, 18), date(1983, 10, 18), AgeDuration{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Age(tt.dob, tt.asOf)); diff != "" {
				t.Errorf("Age() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAge_IgnoresTimeOfDay(t *testing.T) {
	dob := time.Date(1990, 5, 15, 23, 30, 0, 0, time.UTC)
	asOf := time.Date(2025, 5, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, AgeDuration{Years: 35}, Age(dob, asOf))
}

func TestYearsUntilRetirement(t *testing.T) {
	asOf := date(2026, 10, 18)

	tests := []struct {
		name string
		dob  time.Time
		age  int
		want AgeDuration
	}{
		{"whole years remaining", date(1983, 10, 18), 67, AgeDuration{24, 0}},
		{"months only", date(1960, 1, 1), 67, AgeDuration{0, 2}},
		{"retirement day", date(1959, 10, 18), 67, AgeDuration{0, 0}},
		// Past retirement: raw span is {-2, 4}; each part is clamped on its own.
		{"past retirement clamps independently", date(1958, 3, 10), 67, AgeDuration{0, 4}},
		{"long past retirement", date(1940, 1, 1), 67, AgeDuration{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearsUntilRetirement(tt.dob, tt.age, asOf)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Years, 0)
			assert.GreaterOrEqual(t, got.Months, 0)
		})
	}
}

func TestDaysUntilRetirement(t *testing.T) {
	asOf := date(2026, 10, 18)

	assert.Equal(t, 75, DaysUntilRetirement(date(1960, 1, 1), 67, asOf))
	assert.Equal(t, 0, DaysUntilRetirement(date(1959, 10, 18), 67, asOf))
	assert.Equal(t, 0, DaysUntilRetirement(date(1958, 3, 10), 67, asOf), "never negative")

	// A reference time later in the day still counts the whole calendar day.
	afternoon := time.Date(2026, 10, 18, 15, 45, 0, 0, time.UTC)
	assert.Equal(t, 75, DaysUntilRetirement(date(1960, 1, 1), 67, afternoon))
}

func TestYearsAndDaysDisagreePastRetirement(t *testing.T) {
	dob := date(1958, 3, 10)
	asOf := date(2026, 10, 18)

	// The clamped duration still reports months while days reports nothing left.
	assert.Equal(t, AgeDuration{Years: 0, Months: 4}, YearsUntilRetirement(dob, 67, asOf))
	assert.Equal(t, 0, DaysUntilRetirement(dob, 67, asOf))
}

func TestRetirementDate_LeapDay(t *testing.T) {
	assert.Equal(t, date(2067, 3, 1), RetirementDate(date(2000, 2, 29), 67))
	assert.Equal(t, date(2068, 2, 29), RetirementDate(date(2000, 2, 29), 68))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   AgeDuration
		want string
	}{
		{AgeDuration{0, 0}, "Retirement age reached"},
		{AgeDuration{1, 0}, "1 year"},
		{AgeDuration{0, 1}, "1 month"},
		{AgeDuration{2, 3}, "2 years and 3 months"},
		{AgeDuration{1, 1}, "1 year and 1 month"},
		{AgeDuration{0, 11}, "11 months"},
		{AgeDuration{24, 0}, "24 years"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 years", Plural(0, "year"))
	assert.Equal(t, "1 year", Plural(1, "year"))
	assert.Equal(t, "2 months", Plural(2, "month"))
}

func TestAgeDuration_InYears(t *testing.T) {
	assert.True(t, AgeDuration{2, 6}.InYears().Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, AgeDuration{}.InYears().IsZero())
}
