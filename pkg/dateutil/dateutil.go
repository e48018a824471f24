package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AgeDuration is a whole-years plus remaining-months span between two calendar dates
type AgeDuration struct {
	Years  int `yaml:"years" json:"years"`
	Months int `yaml:"months" json:"months"`
}

// IsZero reports whether both components are zero
func (d AgeDuration) IsZero() bool {
	return d.Years == 0 && d.Months == 0
}

// InYears returns the span as fractional years (years + months/12)
func (d AgeDuration) InYears() decimal.Decimal {
	return decimal.NewFromInt(int64(d.Years)).
		Add(decimal.NewFromInt(int64(d.Months)).Div(decimal.NewFromInt(12)))
}

// String implements fmt.Stringer using FormatDuration
func (d AgeDuration) String() string {
	return FormatDuration(d)
}

// CalendarDate truncates t to midnight UTC of its own calendar day.
// All arithmetic in this package works on calendar dates only.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the host's local calendar date
func Today() time.Time {
	return CalendarDate(time.Now())
}

// span computes the years/months between from and to.
// Months borrow from years when negative; a further month is removed when the
// day-of-month of to precedes that of from (the current month is not complete),
// borrowing from years again if needed.
func span(from, to time.Time) AgeDuration {
	from, to = CalendarDate(from), CalendarDate(to)

	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())
	if months < 0 {
		years--
		months += 12
	}

	if to.Day() < from.Day() {
		months--
		if months < 0 {
			years--
			months += 12
		}
	}

	return AgeDuration{Years: years, Months: months}
}

// Age calculates the age reached on asOf by someone born on dateOfBirth
func Age(dateOfBirth, asOf time.Time) AgeDuration {
	return span(dateOfBirth, asOf)
}

// RetirementDate returns the date of the retirementAge birthday.
// A 29 February birth date rolls forward to 1 March in non-leap years.
func RetirementDate(dateOfBirth time.Time, retirementAge int) time.Time {
	return CalendarDate(dateOfBirth).AddDate(retirementAge, 0, 0)
}

// YearsUntilRetirement returns the time left between asOf and the retirement birthday.
// Years and months are each clamped to zero independently, so a date past
// retirement can yield a pair such as {0, 4}; DaysUntilRetirement is the
// authoritative "already retired" signal.
func YearsUntilRetirement(dateOfBirth time.Time, retirementAge int, asOf time.Time) AgeDuration {
	remaining := span(asOf, RetirementDate(dateOfBirth, retirementAge))
	if remaining.Years < 0 {
		remaining.Years = 0
	}
	if remaining.Months < 0 {
		remaining.Months = 0
	}
	return remaining
}

// DaysUntilRetirement returns the whole days (rounded up) until the retirement birthday, never negative
func DaysUntilRetirement(dateOfBirth time.Time, retirementAge int, asOf time.Time) int {
	target := RetirementDate(dateOfBirth, retirementAge)
	days := math.Ceil(target.Sub(CalendarDate(asOf)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// FormatDuration renders a duration as "N years and M months"
func FormatDuration(d AgeDuration) string {
	if d.IsZero() {
		return "Retirement age reached"
	}

	parts := make([]string, 0, 2)
	if d.Years > 0 {
		parts = append(parts, Plural(d.Years, "year"))
	}
	if d.Months > 0 {
		parts = append(parts, Plural(d.Months, "month"))
	}
	return strings.Join(parts, " and ")
}

// Plural formats a count with its unit, adding an s unless n is 1
func Plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
