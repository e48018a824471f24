package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ProfileTransform
}

const (
	categoryTiming        = "Retirement Timing"
	categoryContributions = "Contributions"
	categoryAssumptions   = "Assumptions"
	categoryModel         = "Model"
	categoryCombination   = "Combination Strategies"
)

var categoryOrder = []string{categoryTiming, categoryContributions, categoryAssumptions, categoryModel, categoryCombination}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if plans
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "retire_later_1yr",
		Category:    categoryTiming,
		Description: "Retire 1 year later than planned",
		Transforms:  []ProfileTransform{&RetireLater{Years: 1}},
	})
	registry.Register(Template{
		Name:        "retire_later_3yr",
		Category:    categoryTiming,
		Description: "Retire 3 years later than planned",
		Transforms:  []ProfileTransform{&RetireLater{Years: 3}},
	})
	registry.Register(Template{
		Name:        "retire_early_60",
		Category:    categoryTiming,
		Description: "Retire at 60",
		Transforms:  []ProfileTransform{&SetRetirementAge{Age: 60}},
	})

	registry.Register(Template{
		Name:        "salary_plus_10",
		Category:    categoryContributions,
		Description: "Salary rises by 10%",
		Transforms:  []ProfileTransform{&AdjustSalary{Change: decimal.NewFromFloat(0.10)}},
	})
	registry.Register(Template{
		Name:        "lump_sum_10k",
		Category:    categoryContributions,
		Description: "Pay £10,000 into the pension today",
		Transforms:  []ProfileTransform{&AddLumpSum{Amount: decimal.NewFromInt(10000)}},
	})
	registry.Register(Template{
		Name:        "lump_sum_50k",
		Category:    categoryContributions,
		Description: "Pay £50,000 into the pension today",
		Transforms:  []ProfileTransform{&AddLumpSum{Amount: decimal.NewFromInt(50000)}},
	})
	registry.Register(Template{
		Name:        "custom_contrib_350",
		Category:    categoryContributions,
		Description: "Contribute £200 (employee) + £150 (employer) a month",
		Transforms: []ProfileTransform{
			&SetCustomContributions{Employee: decimal.NewFromInt(200), Employer: decimal.NewFromInt(150)},
		},
	})
	registry.Register(Template{
		Name:        "auto_enrolment",
		Category:    categoryContributions,
		Description: "Contribute only the Auto-Enrolment minimum",
		Transforms:  []ProfileTransform{&UseAutoEnrolment{}},
	})

	registry.Register(Template{
		Name:        "low_growth",
		Category:    categoryAssumptions,
		Description: "Pot grows at 3% a year",
		Transforms:  []ProfileTransform{&ModifyGrowth{NewRate: decimal.NewFromFloat(0.03)}},
	})
	registry.Register(Template{
		Name:        "high_growth",
		Category:    categoryAssumptions,
		Description: "Pot grows at 7% a year",
		Transforms:  []ProfileTransform{&ModifyGrowth{NewRate: decimal.NewFromFloat(0.07)}},
	})
	registry.Register(Template{
		Name:        "high_inflation",
		Category:    categoryAssumptions,
		Description: "Inflation runs at 4% a year",
		Transforms:  []ProfileTransform{&ModifyInflation{NewRate: decimal.NewFromFloat(0.04)}},
	})

	registry.Register(Template{
		Name:        "simple_model",
		Category:    categoryModel,
		Description: "Estimate with the simple flat-rate model",
		Transforms:  []ProfileTransform{&SwitchModel{Model: domain.ModelSimple}},
	})
	registry.Register(Template{
		Name:        "detailed_model",
		Category:    categoryModel,
		Description: "Estimate with the detailed Auto-Enrolment model",
		Transforms:  []ProfileTransform{&SwitchModel{Model: domain.ModelDetailed}},
	})

	registry.Register(Template{
		Name:        "retire_later_2yr_contrib_350",
		Category:    categoryCombination,
		Description: "Retire 2 years later + contribute £350 a month",
		Transforms: []ProfileTransform{
			&RetireLater{Years: 2},
			&SetCustomContributions{Employee: decimal.NewFromInt(200), Employer: decimal.NewFromInt(150)},
		},
	})
	registry.Register(Template{
		Name:        "cautious",
		Category:    categoryCombination,
		Description: "Low growth + high inflation",
		Transforms: []ProfileTransform{
			&ModifyGrowth{NewRate: decimal.NewFromFloat(0.03)},
			&ModifyInflation{NewRate: decimal.NewFromFloat(0.04)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base configuration
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names.
// A "key=value" item without its own "name:" prefix continues the
// preceding transform spec, so "t1,add_lump_sum:amount=1,t2" and
// "set_custom_contributions:employee=250,employer=150" both split as expected.
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		last := len(templates) - 1
		if last >= 0 && strings.Contains(templates[last], ":") &&
			strings.Contains(trimmed, "=") && !strings.Contains(trimmed, ":") {
			templates[last] += "," + trimmed
			continue
		}
		templates = append(templates, trimmed)
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = categoryCombination
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  pgap compare config.yaml --with retire_later_1yr,lump_sum_10k\n")
	sb.WriteString("  pgap compare config.yaml --with set_custom_contributions:employee=250,employer=150\n")

	return sb.String()
}
