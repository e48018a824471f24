package transform

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// Helper function to create a basic test configuration
func createTestConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Model: domain.ModelDetailed,
		Member: domain.MemberProfile{
			Name:                 "Alex",
			DateOfBirth:          time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC),
			Salary:               decimal.NewFromInt(40000),
			ExistingPensionValue: decimal.NewFromInt(20000),
			TargetRetirementAge:  67,
		},
	}
}

func TestApplyTransforms_NilConfiguration(t *testing.T) {
	_, err := ApplyTransforms(nil, []ProfileTransform{&RetireLater{Years: 1}})
	if err == nil {
		t.Error("Expected error for nil configuration, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestConfiguration()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got same instance")
	}
	if result.Member.Name != base.Member.Name {
		t.Errorf("Expected name %s, got %s", base.Member.Name, result.Member.Name)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestConfiguration()

	_, err := ApplyTransforms(base, []ProfileTransform{&RetireLater{Years: 1}, nil})
	if err == nil || !strings.Contains(err.Error(), "index 1") {
		t.Errorf("Expected nil transform error, got: %v", err)
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestConfiguration()

	result, err := ApplyTransforms(base, []ProfileTransform{
		&RetireLater{Years: 2},
		&AddLumpSum{Amount: decimal.NewFromInt(5000)},
		&ModifyGrowth{NewRate: decimal.NewFromFloat(0.03)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Member.TargetRetirementAge != 69 {
		t.Errorf("Expected target age 69, got %d", result.Member.TargetRetirementAge)
	}
	if !result.Member.ExistingPensionValue.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected pot 25000, got %s", result.Member.ExistingPensionValue)
	}
	if result.Parameters == nil || result.Parameters.GrowthRate == nil ||
		!result.Parameters.GrowthRate.Equal(decimal.NewFromFloat(0.03)) {
		t.Errorf("Expected growth override 0.03, got %+v", result.Parameters)
	}

	// Base must be untouched
	if base.Member.TargetRetirementAge != 67 || base.Parameters != nil {
		t.Error("Base configuration was mutated")
	}
	if !base.Member.ExistingPensionValue.Equal(decimal.NewFromInt(20000)) {
		t.Error("Base pension value was mutated")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestConfiguration()
	base.Member.TargetRetirementAge = 0

	_, err := ApplyTransforms(base, []ProfileTransform{&RetireLater{Years: 1}})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "retire_later validation failed") {
		t.Errorf("Unexpected error message: %v", err)
	}

	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if transformErr.Operation != "validate" {
		t.Errorf("Expected operation validate, got %s", transformErr.Operation)
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("x", "apply", "failed", inner)
	if err.Error() != "transform x (apply): failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to unwrap")
	}

	err = NewTransformError("x", "validate", "bad", nil)
	if err.Error() != "transform x (validate): bad" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestTransforms_Validate(t *testing.T) {
	base := createTestConfiguration()
	autoPot := createTestConfiguration()
	autoPot.Member.AutoExistingPension = true

	tests := []struct {
		name      string
		transform ProfileTransform
		base      *domain.Configuration
		wantErr   bool
	}{
		{"retire later ok", &RetireLater{Years: 1}, base, false},
		{"retire later zero years", &RetireLater{Years: 0}, base, true},
		{"set age ok", &SetRetirementAge{Age: 60}, base, false},
		{"set age negative", &SetRetirementAge{Age: -1}, base, true},
		{"salary ok", &AdjustSalary{Change: decimal.NewFromFloat(-0.5)}, base, false},
		{"salary wiped out", &AdjustSalary{Change: decimal.NewFromInt(-1)}, base, true},
		{"lump sum ok", &AddLumpSum{Amount: decimal.NewFromInt(1)}, base, false},
		{"lump sum zero", &AddLumpSum{Amount: decimal.Zero}, base, true},
		{"lump sum on auto pot", &AddLumpSum{Amount: decimal.NewFromInt(1000)}, autoPot, true},
		{"custom negative", &SetCustomContributions{Employee: decimal.NewFromInt(-1), Employer: decimal.Zero}, base, true},
		{"custom zero", &SetCustomContributions{Employee: decimal.Zero, Employer: decimal.Zero}, base, false},
		{"growth too high", &ModifyGrowth{NewRate: decimal.NewFromFloat(0.25)}, base, true},
		{"inflation negative", &ModifyInflation{NewRate: decimal.NewFromFloat(-0.01)}, base, true},
		{"model unknown", &SwitchModel{Model: "hybrid"}, base, true},
		{"nil base", &UseAutoEnrolment{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(tt.base)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetCustomContributions_Apply(t *testing.T) {
	base := createTestConfiguration()

	result, err := (&SetCustomContributions{
		Employee: decimal.NewFromInt(250),
		Employer: decimal.NewFromInt(100),
	}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Member.UseCustomContributions {
		t.Error("Expected custom contributions to be enabled")
	}
	total := result.Member.ContributionInputs().CustomMonthlyTotal()
	if !total.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Expected monthly total 350, got %s", total)
	}

	back, err := (&UseAutoEnrolment{}).Apply(result)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if back.Member.UseCustomContributions {
		t.Error("Expected Auto-Enrolment after UseAutoEnrolment")
	}
}

func TestAdjustSalary_Apply(t *testing.T) {
	result, err := (&AdjustSalary{Change: decimal.NewFromFloat(0.10)}).Apply(createTestConfiguration())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Member.Salary.Equal(decimal.NewFromInt(44000)) {
		t.Errorf("Expected salary 44000, got %s", result.Member.Salary)
	}
}

func TestModifyInflation_KeepsOtherOverrides(t *testing.T) {
	base := createTestConfiguration()
	growth := decimal.NewFromFloat(0.06)
	base.Parameters = &domain.ParameterOverrides{GrowthRate: &growth}

	result, err := (&ModifyInflation{NewRate: decimal.NewFromFloat(0.04)}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Parameters.GrowthRate == nil || !result.Parameters.GrowthRate.Equal(growth) {
		t.Error("Expected growth override to survive")
	}
	if result.Parameters.InflationRate == nil || !result.Parameters.InflationRate.Equal(decimal.NewFromFloat(0.04)) {
		t.Error("Expected inflation override 0.04")
	}
}

func TestSwitchModel_Apply(t *testing.T) {
	result, err := (&SwitchModel{Model: domain.ModelSimple}).Apply(createTestConfiguration())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Model != domain.ModelSimple {
		t.Errorf("Expected simple model, got %s", result.Model)
	}
}

func TestTransforms_Description(t *testing.T) {
	tests := []struct {
		transform ProfileTransform
		want      string
	}{
		{&RetireLater{Years: 1}, "Retire 1 year later"},
		{&RetireLater{Years: 2}, "Retire 2 years later"},
		{&AddLumpSum{Amount: decimal.NewFromInt(50000)}, "Pay a lump sum of £50,000 into the pension now"},
		{&SetCustomContributions{Employee: decimal.NewFromInt(1250), Employer: decimal.NewFromInt(100)},
			"Contribute £1,250 (employee) + £100 (employer) a month"},
	}

	for _, tt := range tests {
		if got := tt.transform.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}
