package calculation

import (
	"fmt"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// RegimeInput carries everything a regime computation needs
type RegimeInput struct {
	Income     domain.IncomeData
	Deductions domain.DeductionData
	Age        int
	TDS        domain.TDSData
	TCS        domain.TCSData
	Losses     []domain.CarryForwardLoss
}

// OldRegime computes tax under the old regime
func (tc *TaxCalculator) OldRegime(in RegimeInput) domain.TaxResult {
	return tc.calculate(domain.RegimeOld, in)
}

// NewRegime computes tax under the new regime
func (tc *TaxCalculator) NewRegime(in RegimeInput) domain.TaxResult {
	return tc.calculate(domain.RegimeNew, in)
}

// Calculate dispatches on regime
func (tc *TaxCalculator) Calculate(regime domain.Regime, in RegimeInput) domain.TaxResult {
	return tc.calculate(regime, in)
}

// CalculateOldRegimeTax computes old regime tax with the built-in rules
func CalculateOldRegimeTax(income domain.IncomeData, deductions domain.DeductionData, age int,
	tds domain.TDSData, tcs domain.TCSData, losses []domain.CarryForwardLoss) domain.TaxResult {
	return defaultCalculator.OldRegime(RegimeInput{Income: income, Deductions: deductions, Age: age, TDS: tds, TCS: tcs, Losses: losses})
}

// CalculateNewRegimeTax computes new regime tax with the built-in rules
func CalculateNewRegimeTax(income domain.IncomeData, deductions domain.DeductionData, age int,
	tds domain.TDSData, tcs domain.TCSData, losses []domain.CarryForwardLoss) domain.TaxResult {
	return defaultCalculator.NewRegime(RegimeInput{Income: income, Deductions: deductions, Age: age, TDS: tds, TCS: tcs, Losses: losses})
}

func (tc *TaxCalculator) calculate(regime domain.Regime, in RegimeInput) domain.TaxResult {
	rules := tc.Rules.Regime(regime)
	income := in.Income
	result := domain.TaxResult{Regime: regime}

	// House property
	houseProperty := tc.HousePropertyIncome(income.HouseProperty)
	if hp := income.HouseProperty; hp != nil && !hp.IsLetOut && hp.SelfOccupiedCount > 2 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d self-occupied properties declared; only two qualify for nil annual value, all were treated as self-occupied",
			hp.SelfOccupiedCount))
	}

	// Brought forward losses, then capital gains on what is left
	shortTerm, longTerm := tc.sumGains(income.CapitalGains)
	setOff := ApplyCarryForwardLosses(IncomeHeads{
		ShortTermGains: shortTerm,
		LongTermGains:  longTerm,
		Business:       income.BusinessIncome,
		HouseProperty:  houseProperty,
		Speculative:    income.SpeculativeIncome,
	}, in.Losses)
	gains := tc.reduceGains(income.CapitalGains, false, shortTerm.Sub(setOff.Adjusted.ShortTermGains))
	gains = tc.reduceGains(gains, true, longTerm.Sub(setOff.Adjusted.LongTermGains))

	capitalGains := tc.ClassifyCapitalGains(gains)
	for _, id := range capitalGains.UnknownAssetTypes {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown asset type %q ignored", id))
	}

	// Gross total income excludes flat-rate capital gains
	gross := income.Salary.
		Add(setOff.Adjusted.Business).
		Add(capitalGains.SlabDeferred).
		Add(income.OtherSources).
		Add(setOff.Adjusted.HouseProperty).
		Add(setOff.Adjusted.Speculative)

	standardDeduction := tc.StandardDeduction(regime, income.Salary)
	var chapter decimal.Decimal
	if regime == domain.RegimeOld {
		chapter = tc.oldRegimeDeductions(in.Deductions, in.Age, gross.Sub(standardDeduction))
		if income.HouseProperty != nil && !income.HouseProperty.IsLetOut &&
			income.HouseProperty.InterestOnLoan.IsPositive() && in.Deductions.HomeLoanInterest.IsPositive() {
			result.Warnings = append(result.Warnings,
				"home loan interest claimed both as a deduction and against self-occupied house property")
		}
	} else {
		chapter = tc.newRegimeDeductions(in.Deductions)
	}
	totalDeductions := standardDeduction.Add(chapter)
	taxable := nonNegative(gross.Sub(totalDeductions))

	slabs := SlabsForAge(rules, in.Age)
	slabTax := CalculateSlabTax(taxable, slabs)
	taxBeforeRebate := slabTax.Add(capitalGains.TotalTax)

	rebate := CalculateRebate(taxable, slabTax, rules)
	taxAfterRebate := taxBeforeRebate.Sub(rebate)

	surcharge := percentOf(taxAfterRebate, SurchargeRate(taxable, tc.Rules.Surcharge))
	cess := percentOf(taxAfterRebate.Add(surcharge), tc.Rules.CessRate)
	totalTax := taxAfterRebate.Add(surcharge).Add(cess)

	tds := in.TDS.Total()
	tcs := in.TCS.Total()
	netPayable := nonNegative(totalTax.Sub(tds).Sub(tcs))

	advance := decimal.Zero
	if netPayable.GreaterThan(tc.Rules.AdvanceTaxThreshold) {
		advance = percentOf(netPayable, tc.Rules.AdvanceTaxRate)
	}

	effectiveRate := decimal.Zero
	if gross.IsPositive() {
		effectiveRate = totalTax.Div(gross).Mul(hundred).Round(2)
	}

	result.GrossIncome = gross
	result.StandardDeduction = standardDeduction
	result.TotalDeductions = totalDeductions
	result.TaxableIncome = taxable
	result.TaxBeforeRebate = taxBeforeRebate
	result.RebateAmount = rebate
	result.TaxAfterRebate = taxAfterRebate
	result.Surcharge = surcharge
	result.Cess = cess
	result.TotalTax = totalTax
	result.EffectiveRate = effectiveRate
	result.CapitalGainsTax = capitalGains.TotalTax
	result.RegularIncomeTax = slabTax
	result.TDSDeducted = tds
	result.TCSDeducted = tcs
	result.NetTaxPayable = netPayable
	result.AdvanceTaxRequired = advance
	result.HousePropertyIncome = houseProperty
	result.SlabBreakdown = SlabBreakdown(taxable, slabs)
	result.CapitalGainsBreakdown = capitalGains.Breakdown
	result.LossesUtilized = setOff.Utilized
	result.LossesRemaining = setOff.Remaining
	return result
}

// oldRegimeDeductions re-applies single-limit caps to pre-computed amounts.
// 80D arrives as a single figure, so it is held to the combined senior self and
// parents maximum. 80G is capped last against income net of every other deduction.
func (tc *TaxCalculator) oldRegimeDeductions(d domain.DeductionData, age int, incomeAfterStandard decimal.Decimal) decimal.Decimal {
	dc := tc.Deductions
	section80C := dc.Section80C(Section80CInput{
		Other:         d.Section80C,
		Section80CCC:  d.Section80CCC,
		Section80CCD1: d.Section80CCD,
	})

	total := section80C.Eligible.
		Add(capAt(d.Section80D, dc.Section80DMax())).
		Add(nonNegative(d.HRA)).
		Add(nonNegative(d.LTA)).
		Add(dc.HomeLoanInterest(d.HomeLoanInterest)).
		Add(dc.InterestDeduction(d.Section80TTA, age)).
		Add(dc.NPSAdditional(d.NPS)).
		Add(dc.ProfessionalTax(d.ProfessionalTax)).
		Add(CalculateSection80E(d.Section80E)).
		Add(dc.Section80EE(d.Section80EE)).
		Add(dc.Section80EEA(d.Section80EEA)).
		Add(capAt(d.Section80U, dc.Limits.DisabilitySevere)).
		Add(capAt(d.Section80DD, dc.Limits.DisabilitySevere)).
		Add(dc.Section80DDB(d.Section80DDB, age)).
		Add(dc.Section80CCG(d.Section80CCG)).
		Add(nonNegative(d.Section80GG)).
		Add(capAt(d.Gratuity, dc.Limits.Gratuity)).
		Add(capAt(d.LeaveEncashment, dc.Limits.LeaveEncashment))

	adjustedGTI := incomeAfterStandard.Sub(total)
	section80G := decimal.Min(nonNegative(d.Section80G), dc.Section80GQualifyingLimit(adjustedGTI))
	return total.Add(section80G)
}

func (tc *TaxCalculator) newRegimeDeductions(d domain.DeductionData) decimal.Decimal {
	dc := tc.Deductions
	return capAt(d.Gratuity, dc.Limits.Gratuity).
		Add(capAt(d.LeaveEncashment, dc.Limits.LeaveEncashment)).
		Add(dc.ProfessionalTax(d.ProfessionalTax)).
		Add(nonNegative(d.MealVouchers))
}
