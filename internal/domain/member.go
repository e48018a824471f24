package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPeriod states whether a salary figure is per year or per month
type SalaryPeriod string

const (
	SalaryAnnual  SalaryPeriod = "annual"
	SalaryMonthly SalaryPeriod = "monthly"
)

// ContributionInputs carries the salary-driven inputs of a projection
type ContributionInputs struct {
	AnnualSalary         decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	ExistingPensionValue decimal.Decimal `yaml:"existing_pension_value" json:"existing_pension_value"`

	// Monthly amounts, used verbatim when UseCustomContributions is set
	CustomEmployeeContribution *decimal.Decimal `yaml:"custom_employee_contribution" json:"custom_employee_contribution,omitempty"`
	CustomEmployerContribution *decimal.Decimal `yaml:"custom_employer_contribution" json:"custom_employer_contribution,omitempty"`
	UseCustomContributions     bool             `yaml:"use_custom_contributions" json:"use_custom_contributions"`
}

// Validate checks the custom contribution invariant
func (c ContributionInputs) Validate() error {
	if !c.UseCustomContributions {
		return nil
	}
	if c.CustomEmployeeContribution == nil || c.CustomEmployerContribution == nil {
		return fmt.Errorf("custom contributions require both employee and employer amounts")
	}
	if c.CustomEmployeeContribution.IsNegative() || c.CustomEmployerContribution.IsNegative() {
		return fmt.Errorf("custom contributions cannot be negative")
	}
	return nil
}

// CustomMonthlyTotal returns employee plus employer monthly contributions.
// Missing amounts count as zero.
func (c ContributionInputs) CustomMonthlyTotal() decimal.Decimal {
	total := decimal.Zero
	if c.CustomEmployeeContribution != nil {
		total = total.Add(*c.CustomEmployeeContribution)
	}
	if c.CustomEmployerContribution != nil {
		total = total.Add(*c.CustomEmployerContribution)
	}
	return total
}

// MemberProfile represents the person whose retirement provision is being estimated
type MemberProfile struct {
	Name        string          `yaml:"name" json:"name"`
	DateOfBirth time.Time       `yaml:"date_of_birth" json:"date_of_birth"`
	Salary      decimal.Decimal `yaml:"salary" json:"salary"`
	// SalaryPeriod defaults to annual
	SalaryPeriod SalaryPeriod `yaml:"salary_period,omitempty" json:"salary_period,omitempty"`

	ExistingPensionValue decimal.Decimal `yaml:"existing_pension_value" json:"existing_pension_value"`
	// AutoExistingPension replaces ExistingPensionValue with an estimate built from salary and age
	AutoExistingPension bool `yaml:"auto_existing_pension" json:"auto_existing_pension"`

	UseCustomContributions     bool             `yaml:"use_custom_contributions" json:"use_custom_contributions"`
	CustomEmployeeContribution *decimal.Decimal `yaml:"custom_employee_contribution" json:"custom_employee_contribution,omitempty"`
	CustomEmployerContribution *decimal.Decimal `yaml:"custom_employer_contribution" json:"custom_employer_contribution,omitempty"`

	// Income expected at retirement from outside the pot (display only)
	FinalSalaryIncome decimal.Decimal `yaml:"final_salary_income" json:"final_salary_income"`
	OtherIncome       decimal.Decimal `yaml:"other_income" json:"other_income"`

	// TargetRetirementAge overrides the model's statutory retirement age when non-zero
	TargetRetirementAge int `yaml:"target_retirement_age,omitempty" json:"target_retirement_age,omitempty"`
}

// AnnualSalary normalises the salary to a yearly figure
func (m MemberProfile) AnnualSalary() decimal.Decimal {
	if m.SalaryPeriod == SalaryMonthly {
		return m.Salary.Mul(decimal.NewFromInt(12))
	}
	return m.Salary
}

// ContributionInputs extracts the contribution inputs of the profile
func (m MemberProfile) ContributionInputs() ContributionInputs {
	return ContributionInputs{
		AnnualSalary:               m.AnnualSalary(),
		ExistingPensionValue:       m.ExistingPensionValue,
		CustomEmployeeContribution: m.CustomEmployeeContribution,
		CustomEmployerContribution: m.CustomEmployerContribution,
		UseCustomContributions:     m.UseCustomContributions,
	}
}

// DeepCopy creates a deep copy of the profile
func (m MemberProfile) DeepCopy() MemberProfile {
	out := m
	if m.CustomEmployeeContribution != nil {
		v := *m.CustomEmployeeContribution
		out.CustomEmployeeContribution = &v
	}
	if m.CustomEmployerContribution != nil {
		v := *m.CustomEmployerContribution
		out.CustomEmployerContribution = &v
	}
	return out
}

// Configuration represents the complete input configuration of one estimate
type Configuration struct {
	Member     MemberProfile       `yaml:"member" json:"member"`
	Model      Model               `yaml:"model" json:"model"`
	Parameters *ParameterOverrides `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// AsOf pins the reference date; empty means today
	AsOf *time.Time `yaml:"as_of,omitempty" json:"as_of,omitempty"`
}

// DeepCopy creates a deep copy of the configuration
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{
		Member:     c.Member.DeepCopy(),
		Model:      c.Model,
		Parameters: c.Parameters.clone(),
	}
	if c.AsOf != nil {
		asOf := *c.AsOf
		out.AsOf = &asOf
	}
	return out
}
