package transform

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/shopspring/decimal"
)

// AdjustSalary scales the member's salary by a fractional change (0.10 = +10%).
type AdjustSalary struct {
	Change decimal.Decimal
}

func (as *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (as *AdjustSalary) Description() string {
	return fmt.Sprintf("Change salary by %s%%", as.Change.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (as *AdjustSalary) Validate(base *domain.Configuration) error {
	if as.Change.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("change must be greater than -1, got %s", as.Change), nil)
	}
	return requireBase(as.Name(), base)
}

func (as *AdjustSalary) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Member.Salary = modified.Member.Salary.Mul(decimal.NewFromInt(1).Add(as.Change))
	return modified, nil
}

// AddLumpSum adds a one-off payment to the existing pension value.
type AddLumpSum struct {
	Amount decimal.Decimal
}

func (al *AddLumpSum) Name() string {
	return "add_lump_sum"
}

func (al *AddLumpSum) Description() string {
	return fmt.Sprintf("Pay a lump sum of %s into the pension now", output.FormatWholeCurrency(al.Amount))
}

func (al *AddLumpSum) Validate(base *domain.Configuration) error {
	if !al.Amount.IsPositive() {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", al.Amount), nil)
	}
	if err := requireBase(al.Name(), base); err != nil {
		return err
	}
	if base.Member.AutoExistingPension {
		return NewTransformError(al.Name(), "validate", "existing pension is auto-estimated; set existing_pension_value instead", nil)
	}
	return nil
}

func (al *AddLumpSum) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Member.ExistingPensionValue = modified.Member.ExistingPensionValue.Add(al.Amount)
	return modified, nil
}

// SetCustomContributions replaces Auto-Enrolment with explicit monthly amounts.
type SetCustomContributions struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

func (sc *SetCustomContributions) Name() string {
	return "set_custom_contributions"
}

func (sc *SetCustomContributions) Description() string {
	return fmt.Sprintf("Contribute %s (employee) + %s (employer) a month",
		output.FormatWholeCurrency(sc.Employee), output.FormatWholeCurrency(sc.Employer))
}

func (sc *SetCustomContributions) Validate(base *domain.Configuration) error {
	if sc.Employee.IsNegative() || sc.Employer.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "contributions cannot be negative", nil)
	}
	return requireBase(sc.Name(), base)
}

func (sc *SetCustomContributions) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	employee, employer := sc.Employee, sc.Employer
	modified.Member.UseCustomContributions = true
	modified.Member.CustomEmployeeContribution = &employee
	modified.Member.CustomEmployerContribution = &employer
	return modified, nil
}

// UseAutoEnrolment switches the member back to statutory Auto-Enrolment contributions.
type UseAutoEnrolment struct{}

func (ua *UseAutoEnrolment) Name() string {
	return "use_auto_enrolment"
}

func (ua *UseAutoEnrolment) Description() string {
	return "Contribute the Auto-Enrolment minimum"
}

func (ua *UseAutoEnrolment) Validate(base *domain.Configuration) error {
	return requireBase(ua.Name(), base)
}

func (ua *UseAutoEnrolment) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Member.UseCustomContributions = false
	return modified, nil
}
