package calculation

import (
	"context"
	"fmt"
	"strings"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/pkg/dateutil"
)

// Engine runs both regimes for a taxpayer profile and compares them
type Engine struct {
	Calculator *TaxCalculator
	Logger     Logger
}

// NewEngine creates an engine with the built-in rules
func NewEngine() *Engine {
	return NewEngineWithRules(nil)
}

// NewEngineWithRules creates an engine with configurable rules
func NewEngineWithRules(rules *domain.TaxRules) *Engine {
	return &Engine{
		Calculator: NewTaxCalculator(rules),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Compute runs the old and new regime calculations and recommends one
func (e *Engine) Compute(ctx context.Context, profile *domain.TaxpayerProfile) (*domain.ComputationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is nil", domain.ErrInvalidProfile)
	}

	assessmentYear := profile.AssessmentYear
	if assessmentYear == "" {
		assessmentYear = e.Calculator.Rules.AssessmentYear
	}
	if assessmentYear != e.Calculator.Rules.AssessmentYear {
		e.Logger.Warnf("profile assessment year %s differs from rules for %s", assessmentYear, e.Calculator.Rules.AssessmentYear)
	}

	age, err := e.resolveAge(profile, assessmentYear)
	if err != nil {
		return nil, err
	}

	income := profile.Income
	income.CapitalGains = e.Calculator.NormalizeCapitalGains(income.CapitalGains)

	input := RegimeInput{
		Income:     income,
		Deductions: profile.Deductions,
		Age:        age,
		TDS:        profile.TDS,
		TCS:        profile.TCS,
		Losses:     profile.CarryForwardLosses,
	}

	e.Logger.Debugf("computing %s for AY %s, age %d", displayName(profile), assessmentYear, age)
	oldResult := e.Calculator.OldRegime(input)
	newResult := e.Calculator.NewRegime(input)
	comparison := GetOptimalRegime(oldResult, newResult)

	for _, w := range uniqueWarnings(oldResult.Warnings, newResult.Warnings) {
		e.Logger.Warnf("%s: %s", displayName(profile), w)
	}
	e.Logger.Infof("old regime tax %s, new regime tax %s, recommended %s regime saves %s",
		oldResult.TotalTax.StringFixed(2), newResult.TotalTax.StringFixed(2),
		comparison.RecommendedRegime, comparison.Savings.StringFixed(2))

	return &domain.ComputationReport{
		ID:             idFunc(),
		GeneratedAt:    nowFunc(),
		TaxpayerName:   profile.Name,
		AssessmentYear: assessmentYear,
		Age:            age,
		OldRegime:      oldResult,
		NewRegime:      newResult,
		Comparison:     comparison,
	}, nil
}

// resolveAge prefers the declared age and otherwise derives it from the date of
// birth at the end of the financial year
func (e *Engine) resolveAge(profile *domain.TaxpayerProfile, assessmentYear string) (int, error) {
	if profile.Age < 0 {
		return 0, fmt.Errorf("%w: age %d is negative", domain.ErrInvalidProfile, profile.Age)
	}
	if profile.Age > 0 || profile.DateOfBirth == nil {
		return profile.Age, nil
	}
	yearEnd, err := dateutil.FinancialYearEnd(assessmentYear)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	return dateutil.Age(profile.DateOfBirth.Time, yearEnd), nil
}

func displayName(profile *domain.TaxpayerProfile) string {
	if strings.TrimSpace(profile.Name) == "" {
		return "taxpayer"
	}
	return profile.Name
}

func uniqueWarnings(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, w := range list {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}
