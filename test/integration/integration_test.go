package integration

import (
	"context"
	"testing"

	"github.com/itrdesk/tax-engine/internal/calculation"
	"github.com/itrdesk/tax-engine/internal/config"
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileFile = "../testdata/example_profile.yaml"

func computeExample(t *testing.T) *domain.ComputationReport {
	t.Helper()
	parser := config.NewInputParser()
	profile, err := parser.LoadFromFile(profileFile)
	require.NoError(t, err)

	report, err := calculation.NewEngineWithRules(parser.Rules).Compute(context.Background(), profile)
	require.NoError(t, err)
	return report
}

func TestEndToEndCalculation(t *testing.T) {
	report := computeExample(t)

	assert.Equal(t, "Rohan Iyer", report.TaxpayerName)
	assert.Equal(t, "2025-26", report.AssessmentYear)
	assert.NotEmpty(t, report.ID)

	for _, r := range []domain.TaxResult{report.OldRegime, report.NewRegime} {
		t.Run(string(r.Regime), func(t *testing.T) {
			assert.True(t, r.TotalTax.Equal(r.TaxAfterRebate.Add(r.Surcharge).Add(r.Cess)), "total tax reconciles")
			assert.True(t, r.TaxAfterRebate.Equal(r.TaxBeforeRebate.Sub(r.RebateAmount)), "rebate reconciles")
			expectedNet := decimal.Max(decimal.Zero, r.TotalTax.Sub(r.TDSDeducted).Sub(r.TCSDeducted))
			assert.True(t, r.NetTaxPayable.Equal(expectedNet), "net payable reconciles")
			assert.True(t, r.TDSDeducted.Equal(decimal.NewFromInt(426000)))
			assert.True(t, r.TCSDeducted.Equal(decimal.NewFromInt(25000)))
			assert.True(t, r.HousePropertyIncome.Equal(decimal.NewFromInt(93600)), "let-out flat, got %s", r.HousePropertyIncome)
			assert.True(t, r.CapitalGainsTax.IsPositive())
			assert.Empty(t, r.LossesRemaining, "both losses are absorbed")
			assert.Empty(t, r.Warnings)
		})
	}

	cmp := report.Comparison
	assert.False(t, cmp.Savings.IsNegative())
	chosen := report.Result(cmp.RecommendedRegime)
	other := report.OldRegime
	if cmp.RecommendedRegime == domain.RegimeOld {
		other = report.NewRegime
	}
	assert.True(t, chosen.TotalTax.LessThanOrEqual(other.TotalTax))
	assert.True(t, cmp.Savings.Equal(other.TotalTax.Sub(chosen.TotalTax)))
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	profile, err := parser.LoadFromFile(profileFile)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateProfile(profile))
	require.Len(t, profile.Income.CapitalGains, 3)
	require.NotNil(t, profile.Income.CapitalGains[2].SaleDate)
}

func TestRulesOverride(t *testing.T) {
	parser := config.NewInputParser()
	rules, err := parser.LoadRulesFromFile("../testdata/rules_2026_27.yaml")
	require.NoError(t, err)

	profile := &domain.TaxpayerProfile{
		AssessmentYear: "2026-27",
		Age:            35,
		Income:         domain.IncomeData{Salary: decimal.NewFromInt(1275000)},
	}
	require.NoError(t, parser.ValidateProfile(profile))

	report, err := calculation.NewEngineWithRules(rules).Compute(context.Background(), profile)
	require.NoError(t, err)

	nw := report.NewRegime
	assert.True(t, nw.TaxableIncome.Equal(decimal.NewFromInt(1200000)), "got %s", nw.TaxableIncome)
	assert.True(t, nw.TaxBeforeRebate.Equal(decimal.NewFromInt(60000)), "got %s", nw.TaxBeforeRebate)
	assert.True(t, nw.TotalTax.IsZero(), "full rebate at the threshold, got %s", nw.TotalTax)
	assert.Equal(t, domain.RegimeNew, report.Comparison.RecommendedRegime)
	assert.True(t, report.OldRegime.TotalTax.IsPositive())
}
