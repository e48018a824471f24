package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("retire_later", createRetireLater)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("adjust_salary", createAdjustSalary)
	registry.Register("add_lump_sum", createAddLumpSum)
	registry.Register("set_custom_contributions", createSetCustomContributions)
	registry.Register("use_auto_enrolment", func(map[string]string) (ProfileTransform, error) {
		return &UseAutoEnrolment{}, nil
	})
	registry.Register("modify_growth", createModifyGrowth)
	registry.Register("modify_inflation", createModifyInflation)
	registry.Register("switch_model", createSwitchModel)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_custom_contributions:employee=250,employer=150"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createRetireLater(params map[string]string) (ProfileTransform, error) {
	years, err := intParam("retire_later", params, "years")
	if err != nil {
		return nil, err
	}
	return &RetireLater{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (ProfileTransform, error) {
	age, err := intParam("set_retirement_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createAdjustSalary(params map[string]string) (ProfileTransform, error) {
	change, err := decimalParam("adjust_salary", params, "change")
	if err != nil {
		return nil, err
	}
	return &AdjustSalary{Change: change}, nil
}

func createAddLumpSum(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("add_lump_sum", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddLumpSum{Amount: amount}, nil
}

func createSetCustomContributions(params map[string]string) (ProfileTransform, error) {
	employee, err := decimalParam("set_custom_contributions", params, "employee")
	if err != nil {
		return nil, err
	}
	employer, err := decimalParam("set_custom_contributions", params, "employer")
	if err != nil {
		return nil, err
	}
	return &SetCustomContributions{Employee: employee, Employer: employer}, nil
}

func createModifyGrowth(params map[string]string) (ProfileTransform, error) {
	rate, err := decimalParam("modify_growth", params, "rate")
	if err != nil {
		return nil, err
	}
	return &ModifyGrowth{NewRate: rate}, nil
}

func createModifyInflation(params map[string]string) (ProfileTransform, error) {
	rate, err := decimalParam("modify_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &ModifyInflation{NewRate: rate}, nil
}

func createSwitchModel(params map[string]string) (ProfileTransform, error) {
	raw, ok := params["model"]
	if !ok {
		return nil, fmt.Errorf("switch_model requires 'model' parameter")
	}
	model, err := domain.ParseModel(raw)
	if err != nil {
		return nil, err
	}
	return &SwitchModel{Model: model}, nil
}
