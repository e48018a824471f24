package transform

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
)

// RetireLater pushes the member's target retirement age back by a number of years.
// The base must carry an explicit target age (see CalculationEngine.Normalize).
type RetireLater struct {
	Years int
}

func (rl *RetireLater) Name() string {
	return "retire_later"
}

func (rl *RetireLater) Description() string {
	return fmt.Sprintf("Retire %s later", dateutil.Plural(rl.Years, "year"))
}

func (rl *RetireLater) Validate(base *domain.Configuration) error {
	if rl.Years <= 0 {
		return NewTransformError(rl.Name(), "validate", fmt.Sprintf("years must be positive, got %d", rl.Years), nil)
	}
	if err := requireBase(rl.Name(), base); err != nil {
		return err
	}
	if base.Member.TargetRetirementAge <= 0 {
		return NewTransformError(rl.Name(), "validate", "member has no target retirement age", nil)
	}
	return nil
}

func (rl *RetireLater) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Member.TargetRetirementAge += rl.Years
	return modified, nil
}

// SetRetirementAge sets the member's target retirement age to an absolute age.
type SetRetirementAge struct {
	Age int
}

func (sra *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sra *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sra.Age)
}

func (sra *SetRetirementAge) Validate(base *domain.Configuration) error {
	if sra.Age <= 0 {
		return NewTransformError(sra.Name(), "validate", fmt.Sprintf("age must be positive, got %d", sra.Age), nil)
	}
	return requireBase(sra.Name(), base)
}

func (sra *SetRetirementAge) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Member.TargetRetirementAge = sra.Age
	return modified, nil
}
