package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// maxRetirementAge bounds target_retirement_age to something a person can reach
const maxRetirementAge = 100

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadParameterOverrides loads a standalone parameter overrides file
func (ip *InputParser) LoadParameterOverrides(filename string) (*domain.ParameterOverrides, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file %s: %w", filename, err)
	}

	var overrides domain.ParameterOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse parameters YAML: %w", err)
	}
	if err := ip.validateOverrides(&overrides); err != nil {
		return nil, fmt.Errorf("parameters validation failed: %w", err)
	}
	return &overrides, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if _, err := domain.ParseModel(string(config.Model)); err != nil {
		return err
	}
	if err := ip.validateMember(&config.Member, config.AsOf); err != nil {
		return fmt.Errorf("member validation failed: %w", err)
	}
	if err := ip.validateOverrides(config.Parameters); err != nil {
		return fmt.Errorf("parameters validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateMember(member *domain.MemberProfile, asOf *time.Time) error {
	if member.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	reference := time.Now()
	if asOf != nil {
		reference = *asOf
	}
	if member.DateOfBirth.After(reference) {
		return fmt.Errorf("date_of_birth %s is in the future", member.DateOfBirth.Format("2006-01-02"))
	}

	switch member.SalaryPeriod {
	case "", domain.SalaryAnnual, domain.SalaryMonthly:
	default:
		return fmt.Errorf("invalid salary_period %q (valid: annual, monthly)", member.SalaryPeriod)
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"salary", member.Salary},
		{"existing_pension_value", member.ExistingPensionValue},
		{"final_salary_income", member.FinalSalaryIncome},
		{"other_income", member.OtherIncome},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}

	if member.TargetRetirementAge < 0 || member.TargetRetirementAge > maxRetirementAge {
		return fmt.Errorf("target_retirement_age must be between 1 and %d (or omitted for the statutory age)", maxRetirementAge)
	}

	if err := member.ContributionInputs().Validate(); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateOverrides(o *domain.ParameterOverrides) error {
	if o == nil {
		return nil
	}
	// Validate the overrides as they would land on either default set
	for _, base := range []domain.ParameterSet{domain.SimpleParameters(), domain.DetailedParameters()} {
		if err := o.Apply(base).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SaveToFile writes a configuration as YAML
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration returns a sample configuration for the detailed model
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	employee := decimal.NewFromInt(200)
	employer := decimal.NewFromInt(150)

	return &domain.Configuration{
		Member: domain.MemberProfile{
			Name:                       "Jane Smith",
			DateOfBirth:                time.Date(1988, 4, 15, 0, 0, 0, 0, time.UTC),
			Salary:                     decimal.NewFromInt(45000),
			SalaryPeriod:               domain.SalaryAnnual,
			ExistingPensionValue:       decimal.NewFromInt(38000),
			CustomEmployeeContribution: &employee,
			CustomEmployerContribution: &employer,
		},
		Model: domain.ModelDetailed,
	}
}
