package transform

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromFloat(0.20)

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		return NewTransformError(name, "validate", fmt.Sprintf("rate must be between 0 and 0.20, got %s", rate.String()), nil)
	}
	return nil
}

func ratePercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// ModifyGrowth overrides the pot growth rate assumption.
type ModifyGrowth struct {
	NewRate decimal.Decimal
}

func (mg *ModifyGrowth) Name() string {
	return "modify_growth"
}

func (mg *ModifyGrowth) Description() string {
	return fmt.Sprintf("Change pot growth to %s", ratePercent(mg.NewRate))
}

func (mg *ModifyGrowth) Validate(base *domain.Configuration) error {
	if err := validateRate(mg.Name(), mg.NewRate); err != nil {
		return err
	}
	return requireBase(mg.Name(), base)
}

func (mg *ModifyGrowth) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	rate := mg.NewRate
	modified.Parameters = modified.Parameters.Merge(&domain.ParameterOverrides{GrowthRate: &rate})
	return modified, nil
}

// ModifyInflation overrides the inflation rate assumption.
type ModifyInflation struct {
	NewRate decimal.Decimal
}

func (mi *ModifyInflation) Name() string {
	return "modify_inflation"
}

func (mi *ModifyInflation) Description() string {
	return fmt.Sprintf("Change inflation to %s", ratePercent(mi.NewRate))
}

func (mi *ModifyInflation) Validate(base *domain.Configuration) error {
	if err := validateRate(mi.Name(), mi.NewRate); err != nil {
		return err
	}
	return requireBase(mi.Name(), base)
}

func (mi *ModifyInflation) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	rate := mi.NewRate
	modified.Parameters = modified.Parameters.Merge(&domain.ParameterOverrides{InflationRate: &rate})
	return modified, nil
}

// SwitchModel runs the configuration under the other projection model.
type SwitchModel struct {
	Model domain.Model
}

func (sm *SwitchModel) Name() string {
	return "switch_model"
}

func (sm *SwitchModel) Description() string {
	return fmt.Sprintf("Use the %s model", sm.Model)
}

func (sm *SwitchModel) Validate(base *domain.Configuration) error {
	if sm.Model != domain.ModelSimple && sm.Model != domain.ModelDetailed {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown model %q", sm.Model), nil)
	}
	return requireBase(sm.Name(), base)
}

func (sm *SwitchModel) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Model = sm.Model
	return modified, nil
}
