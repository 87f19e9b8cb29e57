package calculation

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// GetOptimalRegime recommends the regime with the lower total tax. Ties go to
// the new regime. PercentageSavings is relative to the higher of the two taxes.
func GetOptimalRegime(oldResult, newResult domain.TaxResult) domain.RegimeComparison {
	difference := oldResult.TotalTax.Sub(newResult.TotalTax)
	recommended := domain.RegimeNew
	if difference.IsNegative() {
		recommended = domain.RegimeOld
	}

	savings := difference.Abs()
	higher := decimal.Max(oldResult.TotalTax, newResult.TotalTax)
	percentage := decimal.Zero
	if higher.IsPositive() {
		percentage = savings.Div(higher).Mul(hundred).Round(2)
	}

	return domain.RegimeComparison{
		RecommendedRegime: recommended,
		Savings:           savings,
		PercentageSavings: percentage,
		OldRegimeTax:      oldResult.TotalTax,
		NewRegimeTax:      newResult.TotalTax,
	}
}
