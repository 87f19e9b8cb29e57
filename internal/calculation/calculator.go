package calculation

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes regime results against one set of tax rules
type TaxCalculator struct {
	Rules      *domain.TaxRules
	Deductions *DeductionCalculator
}

var defaultCalculator = NewDefaultTaxCalculator()

// NewDefaultTaxCalculator creates a calculator for the built-in AY 2025-26 rules
func NewDefaultTaxCalculator() *TaxCalculator {
	return NewTaxCalculator(domain.DefaultTaxRules())
}

// NewTaxCalculator creates a calculator with configurable rules. Sections left
// empty in rules fall back to the built-in values.
func NewTaxCalculator(rules *domain.TaxRules) *TaxCalculator {
	merged := withDefaults(rules)
	return &TaxCalculator{
		Rules:      merged,
		Deductions: NewDeductionCalculator(merged.Deductions),
	}
}

func withDefaults(rules *domain.TaxRules) *domain.TaxRules {
	defaults := domain.DefaultTaxRules()
	if rules == nil {
		return defaults
	}
	merged := *rules
	if merged.AssessmentYear == "" {
		merged.AssessmentYear = defaults.AssessmentYear
	}
	if len(merged.OldRegime.Slabs) == 0 {
		merged.OldRegime = defaults.OldRegime
	}
	if len(merged.NewRegime.Slabs) == 0 {
		merged.NewRegime = defaults.NewRegime
	}
	if merged.Surcharge == nil {
		merged.Surcharge = defaults.Surcharge
	}
	switch {
	case merged.NoCess:
		merged.CessRate = decimal.Zero
	case merged.CessRate.IsZero():
		merged.CessRate = defaults.CessRate
	}
	if merged.AdvanceTaxThreshold.IsZero() && merged.AdvanceTaxRate.IsZero() {
		merged.AdvanceTaxThreshold = defaults.AdvanceTaxThreshold
		merged.AdvanceTaxRate = defaults.AdvanceTaxRate
	}
	if merged.Deductions.Section80CGroup.IsZero() {
		merged.Deductions = defaults.Deductions
	}
	if len(merged.AssetTypes) == 0 {
		merged.AssetTypes = defaults.AssetTypes
	}
	return &merged
}
