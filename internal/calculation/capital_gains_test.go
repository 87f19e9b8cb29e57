package calculation

import (
	"testing"
	"time"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gain(assetType string, longTerm bool, amount int64) domain.CapitalGain {
	return domain.CapitalGain{AssetType: assetType, IsLongTerm: longTerm, Amount: dec(amount)}
}

// TestCapitalGainsClassification tests flat-rate tax and slab deferral by asset type
func TestCapitalGainsClassification(t *testing.T) {
	tests := []struct {
		name         string
		gains        []domain.CapitalGain
		expectedTax  decimal.Decimal
		slabDeferred decimal.Decimal
		description  string
	}{
		{
			name:         "Equity LTCG above exemption",
			gains:        []domain.CapitalGain{gain("equity_shares", true, 150000)},
			expectedTax:  dec(5000),
			slabDeferred: decimal.Zero,
			description:  "50,000 over the 1 lakh exemption at 10%",
		},
		{
			name:         "Equity LTCG within exemption",
			gains:        []domain.CapitalGain{gain("equity_mutual_funds", true, 90000)},
			expectedTax:  decimal.Zero,
			slabDeferred: decimal.Zero,
			description:  "Fully exempt",
		},
		{
			name:         "Exemption shared by one asset type",
			gains:        []domain.CapitalGain{gain("equity_shares", true, 80000), gain("equity_shares", true, 80000)},
			expectedTax:  dec(6000),
			slabDeferred: decimal.Zero,
			description:  "One 1 lakh exemption across both entries leaves 60,000 at 10%",
		},
		{
			name:         "Equity STCG",
			gains:        []domain.CapitalGain{gain("equity_shares", false, 100000)},
			expectedTax:  dec(15000),
			slabDeferred: decimal.Zero,
			description:  "Short-term equity at 15%",
		},
		{
			name:         "Debt fund STCG deferred to slab",
			gains:        []domain.CapitalGain{gain("debt_mutual_funds", false, 50000)},
			expectedTax:  decimal.Zero,
			slabDeferred: dec(50000),
			description:  "Zero short-term rate means slab taxation",
		},
		{
			name:         "Real estate LTCG",
			gains:        []domain.CapitalGain{gain("real_estate", true, 200000)},
			expectedTax:  dec(40000),
			slabDeferred: decimal.Zero,
			description:  "20% with no exemption",
		},
		{
			name:         "Virtual digital assets",
			gains:        []domain.CapitalGain{gain("virtual_digital_assets", false, 100000)},
			expectedTax:  dec(30000),
			slabDeferred: decimal.Zero,
			description:  "Flat 30% regardless of holding",
		},
		{
			name:         "Non-positive amounts ignored",
			gains:        []domain.CapitalGain{gain("equity_shares", false, -20000), gain("gold", false, 0)},
			expectedTax:  decimal.Zero,
			slabDeferred: decimal.Zero,
			description:  "Losses inside the gain list contribute nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateCapitalGainsTax(tt.gains)
			assertDecimal(t, tt.expectedTax, result.TotalTax, tt.description)
			assertDecimal(t, tt.slabDeferred, result.SlabDeferred, tt.description)
			assert.Len(t, result.Breakdown, len(tt.gains))
			assert.Empty(t, result.UnknownAssetTypes)
		})
	}
}

func TestCapitalGainsBreakdown(t *testing.T) {
	result := CalculateCapitalGainsTax([]domain.CapitalGain{gain("equity_shares", true, 150000)})
	require.Len(t, result.Breakdown, 1)
	entry := result.Breakdown[0]
	assert.Equal(t, "Listed Equity Shares", entry.AssetName)
	assertDecimal(t, dec(100000), entry.Exempt)
	assertDecimal(t, dec(50000), entry.Taxable)
	assertDecimal(t, dec(10), entry.Rate)
	assertDecimal(t, dec(5000), entry.Tax)
	assert.False(t, entry.SlabDeferred)
	assertDecimal(t, dec(50000), result.SpecialRateIncome)
}

func TestCapitalGainsUnknownAssetType(t *testing.T) {
	result := CalculateCapitalGainsTax([]domain.CapitalGain{
		gain("crypto_art", false, 100000),
		gain("equity_shares", false, 10000),
	})
	assert.Equal(t, []string{"crypto_art"}, result.UnknownAssetTypes)
	assertDecimal(t, dec(1500), result.TotalTax)
	assertDecimal(t, decimal.Zero, result.SlabDeferred)
	require.Len(t, result.Breakdown, 2)
	assertDecimal(t, decimal.Zero, result.Breakdown[0].Tax)
}

func TestCapitalGainsCustomCatalog(t *testing.T) {
	rules := domain.DefaultTaxRules()
	rules.AssetTypes = []domain.AssetType{
		{ID: "art", Name: "Art", ShortTermRate: dec(0), LongTermRate: dec(0), LongTermThreshold: 36},
	}
	calc := NewTaxCalculator(rules)
	result := calc.ClassifyCapitalGains([]domain.CapitalGain{gain("art", true, 70000)})
	assertDecimal(t, decimal.Zero, result.TotalTax)
	assertDecimal(t, dec(70000), result.SlabDeferred, "zero long-term rate folds into slab income")
}

func TestIsLongTermHolding(t *testing.T) {
	calc := NewDefaultTaxCalculator()
	purchase := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	sale := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, calc.IsLongTermHolding("equity_shares", purchase, sale))
	assert.False(t, calc.IsLongTermHolding("real_estate", purchase, sale), "17 months is short of 24")
	assert.False(t, calc.IsLongTermHolding("unknown", purchase, sale))
}

func TestNormalizeCapitalGains(t *testing.T) {
	calc := NewDefaultTaxCalculator()
	purchase := domain.NewDate(time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC))
	sale := domain.NewDate(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	gains := []domain.CapitalGain{
		{AssetType: "equity_shares", IsLongTerm: false, Amount: dec(1000), PurchaseDate: purchase, SaleDate: sale},
		{AssetType: "gold", IsLongTerm: true, Amount: dec(1000), PurchaseDate: purchase, SaleDate: sale},
		{AssetType: "gold", IsLongTerm: true, Amount: dec(1000)},
	}

	normalized := calc.NormalizeCapitalGains(gains)
	require.Len(t, normalized, 3)
	assert.True(t, normalized[0].IsLongTerm)
	assert.False(t, normalized[1].IsLongTerm, "gold needs 36 months")
	assert.True(t, normalized[2].IsLongTerm, "declared flag kept without dates")
	assert.False(t, gains[0].IsLongTerm, "input is not modified")
}
