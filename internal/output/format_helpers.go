package output

import (
	"strconv"

	"github.com/itrdesk/tax-engine/internal/domain"
	money "github.com/itrdesk/tax-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCompact formats large amounts in lakh or crore.
func FormatCompact(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatCompact()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// RegimeLabel is the display name of a regime
func RegimeLabel(r domain.Regime) string {
	if r == domain.RegimeNew {
		return "New Regime"
	}
	return "Old Regime"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// bracketRange renders a slab bound pair such as "3,00,000 - 7,00,000" or "15,00,000+"
func bracketRange(f domain.BracketFill) string {
	if f.Max.IsZero() {
		return FormatCurrency(f.Min) + "+"
	}
	return FormatCurrency(f.Min) + " - " + FormatCurrency(f.Max)
}
