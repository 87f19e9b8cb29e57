package calculation

import (
	"time"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CapitalGainsResult is the outcome of classifying a list of capital gains.
// SlabDeferred is the portion taxed at slab rates as part of ordinary income.
type CapitalGainsResult struct {
	TotalTax          decimal.Decimal         `json:"total_tax"`
	SpecialRateIncome decimal.Decimal         `json:"special_rate_income"`
	SlabDeferred      decimal.Decimal         `json:"slab_deferred"`
	Breakdown         []domain.CapitalGainTax `json:"breakdown"`
	UnknownAssetTypes []string                `json:"unknown_asset_types,omitempty"`
}

// ClassifyCapitalGains taxes each gain at its asset type's flat rate, or defers it
// to slab rates when that rate is zero. A long-term exemption limit is shared by
// all gains of the same asset type and is consumed in list order. Gains of an
// unknown asset type contribute nothing and are reported in UnknownAssetTypes.
func (tc *TaxCalculator) ClassifyCapitalGains(gains []domain.CapitalGain) CapitalGainsResult {
	result := CapitalGainsResult{}
	exemptionLeft := make(map[string]decimal.Decimal)

	for _, gain := range gains {
		assetType, ok := tc.Rules.LookupAssetType(gain.AssetType)
		entry := domain.CapitalGainTax{
			AssetType:  gain.AssetType,
			IsLongTerm: gain.IsLongTerm,
			Amount:     gain.Amount,
		}
		if !ok {
			result.UnknownAssetTypes = append(result.UnknownAssetTypes, gain.AssetType)
			result.Breakdown = append(result.Breakdown, entry)
			continue
		}
		entry.AssetName = assetType.Name
		if !gain.Amount.IsPositive() {
			result.Breakdown = append(result.Breakdown, entry)
			continue
		}

		taxable := gain.Amount
		rate := assetType.ShortTermRate
		if gain.IsLongTerm {
			rate = assetType.LongTermRate
			if assetType.ExemptionLimit != nil {
				left, seen := exemptionLeft[assetType.ID]
				if !seen {
					left = nonNegative(*assetType.ExemptionLimit)
				}
				exempt := decimal.Min(left, taxable)
				exemptionLeft[assetType.ID] = left.Sub(exempt)
				entry.Exempt = exempt
				taxable = taxable.Sub(exempt)
			}
		}
		entry.Taxable = taxable

		if rate.IsZero() {
			entry.SlabDeferred = true
			result.SlabDeferred = result.SlabDeferred.Add(taxable)
		} else {
			entry.Rate = rate
			entry.Tax = percentOf(taxable, rate)
			result.TotalTax = result.TotalTax.Add(entry.Tax)
			result.SpecialRateIncome = result.SpecialRateIncome.Add(taxable)
		}
		result.Breakdown = append(result.Breakdown, entry)
	}

	return result
}

// CalculateCapitalGainsTax classifies gains against the built-in asset catalog
func CalculateCapitalGainsTax(gains []domain.CapitalGain) CapitalGainsResult {
	return defaultCalculator.ClassifyCapitalGains(gains)
}

// IsLongTermHolding reports whether an asset held from purchase to sale exceeds
// the long-term threshold of its asset type. Unknown types are never long term.
func (tc *TaxCalculator) IsLongTermHolding(assetType string, purchase, sale time.Time) bool {
	at, ok := tc.Rules.LookupAssetType(assetType)
	if !ok {
		return false
	}
	return dateutil.HeldLongerThan(purchase, sale, at.LongTermThreshold)
}

// NormalizeCapitalGains returns a copy of gains with IsLongTerm derived from the
// holding period wherever both dates are known
func (tc *TaxCalculator) NormalizeCapitalGains(gains []domain.CapitalGain) []domain.CapitalGain {
	if gains == nil {
		return nil
	}
	out := make([]domain.CapitalGain, len(gains))
	copy(out, gains)
	for i := range out {
		g := &out[i]
		if g.PurchaseDate == nil || g.SaleDate == nil {
			continue
		}
		if _, ok := tc.Rules.LookupAssetType(g.AssetType); ok {
			g.IsLongTerm = tc.IsLongTermHolding(g.AssetType, g.PurchaseDate.Time, g.SaleDate.Time)
		}
	}
	return out
}

// sumGains totals the positive gains of known asset types by holding period
func (tc *TaxCalculator) sumGains(gains []domain.CapitalGain) (shortTerm, longTerm decimal.Decimal) {
	for _, g := range gains {
		if !g.Amount.IsPositive() {
			continue
		}
		if _, ok := tc.Rules.LookupAssetType(g.AssetType); !ok {
			continue
		}
		if g.IsLongTerm {
			longTerm = longTerm.Add(g.Amount)
		} else {
			shortTerm = shortTerm.Add(g.Amount)
		}
	}
	return shortTerm, longTerm
}

// reduceGains removes amount from the gains of the given holding period in list order
func (tc *TaxCalculator) reduceGains(gains []domain.CapitalGain, longTerm bool, amount decimal.Decimal) []domain.CapitalGain {
	out := make([]domain.CapitalGain, len(gains))
	copy(out, gains)
	for i := range out {
		if !amount.IsPositive() {
			break
		}
		g := &out[i]
		if g.IsLongTerm != longTerm || !g.Amount.IsPositive() {
			continue
		}
		if _, ok := tc.Rules.LookupAssetType(g.AssetType); !ok {
			continue
		}
		cut := decimal.Min(g.Amount, amount)
		g.Amount = g.Amount.Sub(cut)
		amount = amount.Sub(cut)
	}
	return out
}
