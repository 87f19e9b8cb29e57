package calculation

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var standardRepairRate = decimal.NewFromInt(30)

// HousePropertyIncome computes income from house property. A self-occupied
// property has nil annual value so only capped loan interest applies, giving
// a result that is never positive. A let-out property may produce a loss.
func (tc *TaxCalculator) HousePropertyIncome(data *domain.HousePropertyData) decimal.Decimal {
	if data == nil {
		return decimal.Zero
	}

	if !data.IsLetOut {
		interest := decimal.Min(nonNegative(data.InterestOnLoan), tc.Rules.Deductions.HomeLoanInterest)
		return interest.Neg()
	}

	annualValue := nonNegative(data.AnnualRentReceived.Sub(data.MunicipalTaxes))
	standardDeduction := percentOf(annualValue, standardRepairRate)
	return annualValue.
		Sub(standardDeduction).
		Sub(data.RepairMaintenance).
		Sub(data.InterestOnLoan).
		Sub(data.OtherExpenses)
}

// CalculateHousePropertyIncome computes house property income with the built-in rules
func CalculateHousePropertyIncome(data *domain.HousePropertyData) decimal.Decimal {
	return defaultCalculator.HousePropertyIncome(data)
}
