package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one slab of a progressive table
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`   // zero means no upper bound
	Rate decimal.Decimal `yaml:"rate" json:"rate"` // percentage, e.g. 5 for 5%
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.Max.IsZero()
}

// AssetType is a capital asset class. A zero rate means the gain is taxed at slab rates.
type AssetType struct {
	ID                string           `yaml:"id" json:"id"`
	Name              string           `yaml:"name" json:"name"`
	ShortTermRate     decimal.Decimal  `yaml:"short_term_rate" json:"short_term_rate"`
	LongTermRate      decimal.Decimal  `yaml:"long_term_rate" json:"long_term_rate"`
	LongTermThreshold int              `yaml:"long_term_threshold" json:"long_term_threshold"` // months
	ExemptionLimit    *decimal.Decimal `yaml:"exemption_limit,omitempty" json:"exemption_limit,omitempty"`
}

// SurchargeTier applies Rate to tax when taxable income exceeds Threshold
type SurchargeTier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// RegimeRules holds the parameters that differ between the two regimes
type RegimeRules struct {
	StandardDeduction     decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	RebateLimit           decimal.Decimal `yaml:"rebate_limit" json:"rebate_limit"`
	RebateIncomeThreshold decimal.Decimal `yaml:"rebate_income_threshold" json:"rebate_income_threshold"`
	Slabs                 []TaxBracket    `yaml:"slabs" json:"slabs"`
	SeniorSlabs           []TaxBracket    `yaml:"senior_slabs,omitempty" json:"senior_slabs,omitempty"`
	SuperSeniorSlabs      []TaxBracket    `yaml:"super_senior_slabs,omitempty" json:"super_senior_slabs,omitempty"`
}

// DeductionLimits are the statutory caps used by the deduction calculators
type DeductionLimits struct {
	Section80CGroup         decimal.Decimal `yaml:"section_80c_group" json:"section_80c_group"`
	Section80DSelf          decimal.Decimal `yaml:"section_80d_self" json:"section_80d_self"`
	Section80DSelfSenior    decimal.Decimal `yaml:"section_80d_self_senior" json:"section_80d_self_senior"`
	Section80DParents       decimal.Decimal `yaml:"section_80d_parents" json:"section_80d_parents"`
	Section80DParentsSenior decimal.Decimal `yaml:"section_80d_parents_senior" json:"section_80d_parents_senior"`
	PreventiveCheckup       decimal.Decimal `yaml:"preventive_checkup" json:"preventive_checkup"`
	Section80DDB            decimal.Decimal `yaml:"section_80ddb" json:"section_80ddb"`
	Section80DDBSenior      decimal.Decimal `yaml:"section_80ddb_senior" json:"section_80ddb_senior"`
	DisabilityNormal        decimal.Decimal `yaml:"disability_normal" json:"disability_normal"`
	DisabilitySevere        decimal.Decimal `yaml:"disability_severe" json:"disability_severe"`
	Section80EE             decimal.Decimal `yaml:"section_80ee" json:"section_80ee"`
	Section80EEA            decimal.Decimal `yaml:"section_80eea" json:"section_80eea"`
	Section80CCG            decimal.Decimal `yaml:"section_80ccg" json:"section_80ccg"`
	Section80GQualifyingPct decimal.Decimal `yaml:"section_80g_qualifying_pct" json:"section_80g_qualifying_pct"`
	Section80GGMonthly      decimal.Decimal `yaml:"section_80gg_monthly" json:"section_80gg_monthly"`
	Section80TTA            decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	Section80TTB            decimal.Decimal `yaml:"section_80ttb" json:"section_80ttb"`
	HomeLoanInterest        decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"`
	NPSAdditional           decimal.Decimal `yaml:"nps_additional" json:"nps_additional"`
	ProfessionalTax         decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	Gratuity                decimal.Decimal `yaml:"gratuity" json:"gratuity"`
	LeaveEncashment         decimal.Decimal `yaml:"leave_encashment" json:"leave_encashment"`
}

// TaxRules is the full statutory parameter set for one assessment year
type TaxRules struct {
	AssessmentYear      string          `yaml:"assessment_year" json:"assessment_year"`
	OldRegime           RegimeRules     `yaml:"old_regime" json:"old_regime"`
	NewRegime           RegimeRules     `yaml:"new_regime" json:"new_regime"`
	Surcharge           []SurchargeTier `yaml:"surcharge" json:"surcharge"`
	CessRate            decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	NoCess              bool            `yaml:"no_cess,omitempty" json:"no_cess,omitempty"` // a zero CessRate is otherwise read as unset
	AdvanceTaxThreshold decimal.Decimal `yaml:"advance_tax_threshold" json:"advance_tax_threshold"`
	AdvanceTaxRate      decimal.Decimal `yaml:"advance_tax_rate" json:"advance_tax_rate"`
	Deductions          DeductionLimits `yaml:"deductions" json:"deductions"`
	AssetTypes          []AssetType     `yaml:"asset_types" json:"asset_types"`
}

// Regime returns the rules for the given regime
func (r *TaxRules) Regime(regime Regime) RegimeRules {
	if regime == RegimeNew {
		return r.NewRegime
	}
	return r.OldRegime
}

// LookupAssetType finds an asset class by id
func (r *TaxRules) LookupAssetType(id string) (AssetType, bool) {
	for _, at := range r.AssetTypes {
		if at.ID == id {
			return at, true
		}
	}
	return AssetType{}, false
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func limit(v int64) *decimal.Decimal {
	l := decimal.NewFromInt(v)
	return &l
}

// DefaultTaxRules returns the parameters for AY 2025-26 (FY 2024-25)
func DefaultTaxRules() *TaxRules {
	return &TaxRules{
		AssessmentYear: "2025-26",
		OldRegime: RegimeRules{
			StandardDeduction:     d(50000),
			RebateLimit:           d(12500),
			RebateIncomeThreshold: d(500000),
			Slabs: []TaxBracket{
				{Min: d(0), Max: d(250000), Rate: d(0)},
				{Min: d(250000), Max: d(500000), Rate: d(5)},
				{Min: d(500000), Max: d(1000000), Rate: d(20)},
				{Min: d(1000000), Rate: d(30)},
			},
			SeniorSlabs: []TaxBracket{
				{Min: d(0), Max: d(300000), Rate: d(0)},
				{Min: d(300000), Max: d(500000), Rate: d(5)},
				{Min: d(500000), Max: d(1000000), Rate: d(20)},
				{Min: d(1000000), Rate: d(30)},
			},
			SuperSeniorSlabs: []TaxBracket{
				{Min: d(0), Max: d(500000), Rate: d(0)},
				{Min: d(500000), Max: d(1000000), Rate: d(20)},
				{Min: d(1000000), Rate: d(30)},
			},
		},
		NewRegime: RegimeRules{
			StandardDeduction:     d(75000),
			RebateLimit:           d(25000),
			RebateIncomeThreshold: d(700000),
			Slabs: []TaxBracket{
				{Min: d(0), Max: d(300000), Rate: d(0)},
				{Min: d(300000), Max: d(700000), Rate: d(5)},
				{Min: d(700000), Max: d(1000000), Rate: d(10)},
				{Min: d(1000000), Max: d(1200000), Rate: d(15)},
				{Min: d(1200000), Max: d(1500000), Rate: d(20)},
				{Min: d(1500000), Rate: d(30)},
			},
		},
		Surcharge: []SurchargeTier{
			{Threshold: d(5000000), Rate: d(10)},
			{Threshold: d(10000000), Rate: d(15)},
			{Threshold: d(20000000), Rate: d(25)},
			{Threshold: d(50000000), Rate: d(37)},
		},
		CessRate:            d(4),
		AdvanceTaxThreshold: d(10000),
		AdvanceTaxRate:      d(90),
		Deductions: DeductionLimits{
			Section80CGroup:         d(150000),
			Section80DSelf:          d(25000),
			Section80DSelfSenior:    d(50000),
			Section80DParents:       d(25000),
			Section80DParentsSenior: d(50000),
			PreventiveCheckup:       d(5000),
			Section80DDB:            d(40000),
			Section80DDBSenior:      d(100000),
			DisabilityNormal:        d(75000),
			DisabilitySevere:        d(125000),
			Section80EE:             d(50000),
			Section80EEA:            d(150000),
			Section80CCG:            d(25000),
			Section80GQualifyingPct: d(10),
			Section80GGMonthly:      d(5000),
			Section80TTA:            d(10000),
			Section80TTB:            d(50000),
			HomeLoanInterest:        d(200000),
			NPSAdditional:           d(50000),
			ProfessionalTax:         d(2500),
			Gratuity:                d(2000000),
			LeaveEncashment:         d(2500000),
		},
		AssetTypes: DefaultAssetTypes(),
	}
}

// DefaultAssetTypes is the built-in asset class catalog
func DefaultAssetTypes() []AssetType {
	return []AssetType{
		{ID: "equity_shares", Name: "Listed Equity Shares", ShortTermRate: d(15), LongTermRate: d(10), LongTermThreshold: 12, ExemptionLimit: limit(100000)},
		{ID: "equity_mutual_funds", Name: "Equity Mutual Funds", ShortTermRate: d(15), LongTermRate: d(10), LongTermThreshold: 12, ExemptionLimit: limit(100000)},
		{ID: "debt_mutual_funds", Name: "Debt Mutual Funds", ShortTermRate: d(0), LongTermRate: d(20), LongTermThreshold: 36},
		{ID: "real_estate", Name: "Land and Building", ShortTermRate: d(0), LongTermRate: d(20), LongTermThreshold: 24},
		{ID: "gold", Name: "Gold and Jewellery", ShortTermRate: d(0), LongTermRate: d(20), LongTermThreshold: 36},
		{ID: "listed_bonds", Name: "Listed Bonds and Debentures", ShortTermRate: d(0), LongTermRate: d(10), LongTermThreshold: 12},
		{ID: "unlisted_shares", Name: "Unlisted Shares", ShortTermRate: d(0), LongTermRate: d(20), LongTermThreshold: 24},
		{ID: "virtual_digital_assets", Name: "Virtual Digital Assets", ShortTermRate: d(30), LongTermRate: d(30), LongTermThreshold: 0},
		{ID: "other", Name: "Other Capital Assets", ShortTermRate: d(0), LongTermRate: d(20), LongTermThreshold: 36},
	}
}
