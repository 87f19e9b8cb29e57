package output

import (
	"fmt"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarizes the regime choice for display.
type Recommendation struct {
	Regime      domain.Regime
	TotalTax    decimal.Decimal
	Savings     decimal.Decimal
	Percentage  decimal.Decimal
	NetPayable  decimal.Decimal
	Refund      decimal.Decimal
	Explanation string
}

// AnalyzeReport derives the display recommendation from a computation report.
// Refund is the credit (TDS + TCS) in excess of the recommended regime's total tax.
func AnalyzeReport(report *domain.ComputationReport) Recommendation {
	cmp := report.Comparison
	chosen := report.Result(cmp.RecommendedRegime)
	refund := chosen.TDSDeducted.Add(chosen.TCSDeducted).Sub(chosen.TotalTax)
	if refund.IsNegative() {
		refund = decimal.Zero
	}

	var explanation string
	if cmp.Savings.IsZero() {
		explanation = fmt.Sprintf("Both regimes result in the same tax of %s; the %s is recommended.",
			FormatCurrency(chosen.TotalTax), RegimeLabel(cmp.RecommendedRegime))
	} else {
		explanation = fmt.Sprintf("The %s saves %s (%s) compared to the %s.",
			RegimeLabel(cmp.RecommendedRegime), FormatCurrency(cmp.Savings),
			FormatPercentage(cmp.PercentageSavings), RegimeLabel(otherRegime(cmp.RecommendedRegime)))
	}

	return Recommendation{
		Regime:      cmp.RecommendedRegime,
		TotalTax:    chosen.TotalTax,
		Savings:     cmp.Savings,
		Percentage:  cmp.PercentageSavings,
		NetPayable:  chosen.NetTaxPayable,
		Refund:      refund,
		Explanation: explanation,
	}
}

func otherRegime(r domain.Regime) domain.Regime {
	if r == domain.RegimeNew {
		return domain.RegimeOld
	}
	return domain.RegimeNew
}
