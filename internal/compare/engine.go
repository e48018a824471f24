package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/pgap/internal/calculation"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/transform"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
)

// BaseScenarioName labels the unmodified configuration in a comparison
const BaseScenarioName = "base"

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// Templates holds template names or transform specs ("name:k=v")
	Templates []string
	// AsOf pins the reference date for every run; nil uses the configuration's date or today
	AsOf *time.Time
}

// Compare runs the base configuration and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	asOf := dateutil.Today()
	switch {
	case options.AsOf != nil:
		asOf = dateutil.CalendarDate(*options.AsOf)
	case config.AsOf != nil:
		asOf = dateutil.CalendarDate(*config.AsOf)
	}

	base, err := ce.CalcEngine.Normalize(config)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare base configuration: %w", err)
	}

	baseReport, err := ce.CalcEngine.RunAsOf(base, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base configuration: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(BaseScenarioName, baseReport)
	baseResult.Description = "Configuration as supplied"

	alternatives := []ComparisonResult{}
	for _, name := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		description, modified, err := ce.applyAlternative(base, name)
		if err != nil {
			return nil, err
		}

		altReport, err := ce.CalcEngine.RunAsOf(modified, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(name, altReport)
		altResult.Description = description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// applyAlternative resolves a template name or an inline transform spec
func (ce *CompareEngine) applyAlternative(base *domain.Configuration, name string) (string, *domain.Configuration, error) {
	if strings.Contains(name, ":") {
		tr, err := ce.TransformRegistry.ParseTransformSpec(name)
		if err != nil {
			return "", nil, fmt.Errorf("invalid transform %s: %w", name, err)
		}
		modified, err := transform.ApplyTransforms(base, []transform.ProfileTransform{tr})
		if err != nil {
			return "", nil, fmt.Errorf("failed to apply %s: %w", name, err)
		}
		return tr.Description(), modified, nil
	}

	template, ok := ce.TemplateRegistry.Get(name)
	if !ok {
		return "", nil, fmt.Errorf("template %s not found", name)
	}
	modified, err := transform.ApplyTemplate(base, template)
	if err != nil {
		return "", nil, fmt.Errorf("failed to apply template %s: %w", name, err)
	}
	return template.Description, modified, nil
}
