package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxResult is the reconciled computation for one regime.
// TotalTax = TaxAfterRebate + Surcharge + Cess and
// NetTaxPayable = max(0, TotalTax - TDSDeducted - TCSDeducted).
type TaxResult struct {
	Regime              Regime          `json:"regime" yaml:"regime"`
	GrossIncome         decimal.Decimal `json:"gross_income" yaml:"gross_income"`
	StandardDeduction   decimal.Decimal `json:"standard_deduction" yaml:"standard_deduction"`
	TotalDeductions     decimal.Decimal `json:"total_deductions" yaml:"total_deductions"`
	TaxableIncome       decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	TaxBeforeRebate     decimal.Decimal `json:"tax_before_rebate" yaml:"tax_before_rebate"`
	RebateAmount        decimal.Decimal `json:"rebate_amount" yaml:"rebate_amount"`
	TaxAfterRebate      decimal.Decimal `json:"tax_after_rebate" yaml:"tax_after_rebate"`
	Surcharge           decimal.Decimal `json:"surcharge" yaml:"surcharge"`
	Cess                decimal.Decimal `json:"cess" yaml:"cess"`
	TotalTax            decimal.Decimal `json:"total_tax" yaml:"total_tax"`
	EffectiveRate       decimal.Decimal `json:"effective_rate" yaml:"effective_rate"`
	CapitalGainsTax     decimal.Decimal `json:"capital_gains_tax" yaml:"capital_gains_tax"`
	RegularIncomeTax    decimal.Decimal `json:"regular_income_tax" yaml:"regular_income_tax"`
	TDSDeducted         decimal.Decimal `json:"tds_deducted" yaml:"tds_deducted"`
	TCSDeducted         decimal.Decimal `json:"tcs_deducted" yaml:"tcs_deducted"`
	NetTaxPayable       decimal.Decimal `json:"net_tax_payable" yaml:"net_tax_payable"`
	AdvanceTaxRequired  decimal.Decimal `json:"advance_tax_required" yaml:"advance_tax_required"`
	HousePropertyIncome decimal.Decimal `json:"house_property_income" yaml:"house_property_income"`

	SlabBreakdown         []BracketFill      `json:"slab_breakdown,omitempty" yaml:"slab_breakdown,omitempty"`
	CapitalGainsBreakdown []CapitalGainTax   `json:"capital_gains_breakdown,omitempty" yaml:"capital_gains_breakdown,omitempty"`
	LossesUtilized        []CarryForwardLoss `json:"losses_utilized,omitempty" yaml:"losses_utilized,omitempty"`
	LossesRemaining       []CarryForwardLoss `json:"losses_remaining,omitempty" yaml:"losses_remaining,omitempty"`
	Warnings              []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// BracketFill is the portion of taxable income falling in one slab
type BracketFill struct {
	Min             decimal.Decimal `json:"min" yaml:"min"`
	Max             decimal.Decimal `json:"max" yaml:"max"`
	Rate            decimal.Decimal `json:"rate" yaml:"rate"`
	IncomeInBracket decimal.Decimal `json:"income_in_bracket" yaml:"income_in_bracket"`
	Tax             decimal.Decimal `json:"tax" yaml:"tax"`
}

// CapitalGainTax is the per-entry outcome of capital gains classification
type CapitalGainTax struct {
	AssetType    string          `json:"asset_type" yaml:"asset_type"`
	AssetName    string          `json:"asset_name" yaml:"asset_name"`
	IsLongTerm   bool            `json:"is_long_term" yaml:"is_long_term"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Exempt       decimal.Decimal `json:"exempt" yaml:"exempt"`
	Taxable      decimal.Decimal `json:"taxable" yaml:"taxable"`
	Rate         decimal.Decimal `json:"rate" yaml:"rate"`
	Tax          decimal.Decimal `json:"tax" yaml:"tax"`
	SlabDeferred bool            `json:"slab_deferred" yaml:"slab_deferred"`
}

// RegimeComparison is the recommendation between the two regimes.
// Savings is always non-negative.
type RegimeComparison struct {
	RecommendedRegime Regime          `json:"recommended_regime" yaml:"recommended_regime"`
	Savings           decimal.Decimal `json:"savings" yaml:"savings"`
	PercentageSavings decimal.Decimal `json:"percentage_savings" yaml:"percentage_savings"`
	OldRegimeTax      decimal.Decimal `json:"old_regime_tax" yaml:"old_regime_tax"`
	NewRegimeTax      decimal.Decimal `json:"new_regime_tax" yaml:"new_regime_tax"`
}

// ComputationReport bundles both regime results for one taxpayer
type ComputationReport struct {
	ID             string           `json:"id" yaml:"id"`
	GeneratedAt    time.Time        `json:"generated_at" yaml:"generated_at"`
	TaxpayerName   string           `json:"taxpayer_name" yaml:"taxpayer_name"`
	AssessmentYear string           `json:"assessment_year" yaml:"assessment_year"`
	Age            int              `json:"age" yaml:"age"`
	OldRegime      TaxResult        `json:"old_regime" yaml:"old_regime"`
	NewRegime      TaxResult        `json:"new_regime" yaml:"new_regime"`
	Comparison     RegimeComparison `json:"comparison" yaml:"comparison"`
	Assumptions    []string         `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// Result returns the result for the given regime
func (r *ComputationReport) Result(regime Regime) TaxResult {
	if regime == RegimeNew {
		return r.NewRegime
	}
	return r.OldRegime
}
