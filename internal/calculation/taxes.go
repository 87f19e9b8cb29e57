package calculation

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// SLAB AND LEVY ASSUMPTIONS:
//
// 1. Slab rates are percentages and brackets are listed in ascending order.
//    A bracket with a zero Max has no upper bound.
//
// 2. Surcharge is chosen on taxable income and applied to tax after rebate.
//    There is no marginal relief at the surcharge thresholds.
//
// 3. Health and education cess is levied on tax after rebate plus surcharge.

var hundred = decimal.NewFromInt(100)

// percentOf returns rate percent of amount
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// CalculateSlabTax applies a progressive slab table to taxable income.
// Income at or below zero yields zero tax.
func CalculateSlabTax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := taxableIncome
		if !bracket.Unbounded() {
			upper = decimal.Min(taxableIncome, bracket.Max)
		}
		incomeInBracket := upper.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(percentOf(incomeInBracket, bracket.Rate))
		}
	}

	return totalTax
}

// SlabBreakdown reports how much of taxableIncome falls into each bracket.
// Brackets the income never reaches are omitted.
func SlabBreakdown(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) []domain.BracketFill {
	var fills []domain.BracketFill
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return fills
	}
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := taxableIncome
		if !bracket.Unbounded() {
			upper = decimal.Min(taxableIncome, bracket.Max)
		}
		incomeInBracket := upper.Sub(bracket.Min)
		if !incomeInBracket.GreaterThan(decimal.Zero) {
			continue
		}
		fills = append(fills, domain.BracketFill{
			Min:             bracket.Min,
			Max:             bracket.Max,
			Rate:            bracket.Rate,
			IncomeInBracket: incomeInBracket,
			Tax:             percentOf(incomeInBracket, bracket.Rate),
		})
	}
	return fills
}

// SlabsForAge picks the slab table for the taxpayer's age. Tables that are not
// configured fall back to the regular slabs.
func SlabsForAge(rules domain.RegimeRules, age int) []domain.TaxBracket {
	switch {
	case age >= 80 && len(rules.SuperSeniorSlabs) > 0:
		return rules.SuperSeniorSlabs
	case age >= 60 && len(rules.SeniorSlabs) > 0:
		return rules.SeniorSlabs
	}
	return rules.Slabs
}

// SurchargeRate returns the surcharge percentage for the given taxable income
func SurchargeRate(taxableIncome decimal.Decimal, tiers []domain.SurchargeTier) decimal.Decimal {
	rate := decimal.Zero
	best := decimal.Zero
	found := false
	for _, tier := range tiers {
		if taxableIncome.GreaterThan(tier.Threshold) && (!found || tier.Threshold.GreaterThan(best)) {
			rate = tier.Rate
			best = tier.Threshold
			found = true
		}
	}
	return rate
}

// CalculateRebate returns the rebate for a regime. The rebate only offsets slab tax.
func CalculateRebate(taxableIncome, slabTax decimal.Decimal, rules domain.RegimeRules) decimal.Decimal {
	if taxableIncome.GreaterThan(rules.RebateIncomeThreshold) {
		return decimal.Zero
	}
	return decimal.Min(rules.RebateLimit, nonNegative(slabTax))
}
