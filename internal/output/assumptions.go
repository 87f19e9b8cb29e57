package output

import (
	"fmt"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// DefaultAssumptions lists the statutory parameters of the built-in rules.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultTaxRules())

// GenerateAssumptions creates the assumptions list from the rules actually used
func GenerateAssumptions(rules *domain.TaxRules) []string {
	if rules == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Assessment year %s", rules.AssessmentYear),
		fmt.Sprintf("Standard deduction: %s (old), %s (new)",
			FormatCurrency(rules.OldRegime.StandardDeduction), FormatCurrency(rules.NewRegime.StandardDeduction)),
		fmt.Sprintf("Section 87A rebate: up to %s for taxable income up to %s (old), up to %s for taxable income up to %s (new)",
			FormatCurrency(rules.OldRegime.RebateLimit), FormatCurrency(rules.OldRegime.RebateIncomeThreshold),
			FormatCurrency(rules.NewRegime.RebateLimit), FormatCurrency(rules.NewRegime.RebateIncomeThreshold)),
		fmt.Sprintf("Health and education cess: %s of tax plus surcharge", FormatPercentage(rules.CessRate)),
		fmt.Sprintf("Advance tax: %s of net payable when it exceeds %s",
			FormatPercentage(rules.AdvanceTaxRate), FormatCurrency(rules.AdvanceTaxThreshold)),
		"Surcharge tier chosen on taxable income; marginal relief not applied",
	}
}

// reportAssumptions falls back to the defaults when the report carries none
func reportAssumptions(report *domain.ComputationReport) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}
