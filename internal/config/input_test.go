package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.NotNil(t, parser.Rules)
	assert.Equal(t, parser.Rules, NewInputParserWithRules(nil).Rules)
}

func TestLoadFromFile_Success(t *testing.T) {
	testProfile := "name: \"Arjun Mehta\"\n" +
		"pan: \"ABCPM1234Q\"\n" +
		"assessment_year: \"2025-26\"\n" +
		"age: 42\n" +
		"income:\n" +
		"  salary: 1500000\n" +
		"  basic_salary: 750000\n" +
		"  other_sources: 20000.50\n" +
		"  capital_gains:\n" +
		"    - asset_type: equity_shares\n" +
		"      is_long_term: true\n" +
		"      amount: 150000\n" +
		"    - asset_type: gold\n" +
		"      amount: 60000\n" +
		"      purchase_date: 2020-01-15\n" +
		"      sale_date: 2024-05-20\n" +
		"  house_property:\n" +
		"    interest_on_loan: 180000\n" +
		"    self_occupied_count: 1\n" +
		"deductions:\n" +
		"  section_80c: 150000\n" +
		"  section_80d: 25000\n" +
		"tds:\n" +
		"  salary: 120000\n" +
		"carry_forward_losses:\n" +
		"  - assessment_year: \"2023-24\"\n" +
		"    short_term_loss: 10000\n"

	path := writeTemp(t, "profile.yaml", testProfile)
	parser := NewInputParser()
	profile, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Arjun Mehta", profile.Name)
	assert.Equal(t, 42, profile.Age)
	assert.True(t, profile.Income.Salary.Equal(decimal.NewFromInt(1500000)))
	assert.True(t, profile.Income.OtherSources.Equal(decimal.RequireFromString("20000.50")))
	require.Len(t, profile.Income.CapitalGains, 2)
	assert.True(t, profile.Income.CapitalGains[0].IsLongTerm)
	require.NotNil(t, profile.Income.CapitalGains[1].PurchaseDate)
	assert.Equal(t, 2020, profile.Income.CapitalGains[1].PurchaseDate.Year())
	require.NotNil(t, profile.Income.HouseProperty)
	assert.True(t, profile.Income.HouseProperty.InterestOnLoan.Equal(decimal.NewFromInt(180000)))
	assert.True(t, profile.Deductions.Section80C.Equal(decimal.NewFromInt(150000)))
	assert.True(t, profile.TDS.Total().Equal(decimal.NewFromInt(120000)))
	require.Len(t, profile.CarryForwardLosses, 1)
	assert.Equal(t, "2023-24", profile.CarryForwardLosses[0].AssessmentYear)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "name: [unclosed\n")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_UnknownAssetType(t *testing.T) {
	data := []byte("income:\n  capital_gains:\n    - asset_type: baseball_cards\n      amount: 1000\n")
	_, err := NewInputParser().Parse(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownAssetType)
	assert.Contains(t, err.Error(), "baseball_cards")
}

// TestValidateProfile tests the validation rules applied to taxpayer profiles
func TestValidateProfile(t *testing.T) {
	parser := NewInputParser()
	valid := func() *domain.TaxpayerProfile {
		return parser.CreateExampleProfile()
	}

	tests := []struct {
		name        string
		mutate      func(p *domain.TaxpayerProfile)
		errContains string
		description string
	}{
		{
			name:        "Example is valid",
			mutate:      func(p *domain.TaxpayerProfile) {},
			description: "Sample profile passes",
		},
		{
			name:        "Malformed PAN",
			mutate:      func(p *domain.TaxpayerProfile) { p.PAN = "ABC123" },
			errContains: "PAN",
			description: "PAN must be five letters, four digits, one letter",
		},
		{
			name:        "Bad assessment year",
			mutate:      func(p *domain.TaxpayerProfile) { p.AssessmentYear = "2025-27" },
			errContains: "consecutive",
			description: "Assessment year spans two consecutive years",
		},
		{
			name:        "Negative age",
			mutate:      func(p *domain.TaxpayerProfile) { p.Age = -3 },
			errContains: "age",
			description: "Age must be non-negative",
		},
		{
			name:        "Negative salary",
			mutate:      func(p *domain.TaxpayerProfile) { p.Income.Salary = decimal.NewFromInt(-1) },
			errContains: "salary cannot be negative",
			description: "Salary is non-negative",
		},
		{
			name:        "Basic above salary",
			mutate:      func(p *domain.TaxpayerProfile) { p.Income.BasicSalary = p.Income.Salary.Add(decimal.NewFromInt(1)) },
			errContains: "basic salary",
			description: "Basic is part of salary",
		},
		{
			name: "Sale before purchase",
			mutate: func(p *domain.TaxpayerProfile) {
				g := &p.Income.CapitalGains[0]
				g.PurchaseDate, g.SaleDate = g.SaleDate, g.PurchaseDate
			},
			errContains: "sale date",
			description: "Dates must be ordered",
		},
		{
			name: "Sale outside the assessment year",
			mutate: func(p *domain.TaxpayerProfile) {
				p.Income.CapitalGains[0].SaleDate = domain.NewDate(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
			},
			errContains: "assessed in AY 2026-27",
			description: "Gains belong to the financial year of sale",
		},
		{
			name:        "Negative deduction",
			mutate:      func(p *domain.TaxpayerProfile) { p.Deductions.Section80D = decimal.NewFromInt(-500) },
			errContains: "section_80d",
			description: "Deductions are non-negative",
		},
		{
			name:        "Negative TDS",
			mutate:      func(p *domain.TaxpayerProfile) { p.TDS.Rent = decimal.NewFromInt(-1) },
			errContains: "tds rent",
			description: "TDS is non-negative",
		},
		{
			name:        "Loss without assessment year",
			mutate:      func(p *domain.TaxpayerProfile) { p.CarryForwardLosses[0].AssessmentYear = "" },
			errContains: "carry forward loss 0",
			description: "Loss records need their year",
		},
		{
			name:        "Negative self-occupied count",
			mutate:      func(p *domain.TaxpayerProfile) { p.Income.HouseProperty.SelfOccupiedCount = -1 },
			errContains: "self-occupied",
			description: "Count is non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := valid()
			tt.mutate(profile)
			err := parser.ValidateProfile(profile)
			if tt.errContains == "" {
				assert.NoError(t, err, tt.description)
				return
			}
			require.Error(t, err, tt.description)
			assert.Contains(t, err.Error(), tt.errContains, tt.description)
		})
	}

	assert.ErrorIs(t, parser.ValidateProfile(nil), domain.ErrInvalidProfile)
}

func TestLoadRulesFromFile(t *testing.T) {
	rulesYAML := "assessment_year: \"2026-27\"\n" +
		"cess_rate: 4\n" +
		"new_regime:\n" +
		"  standard_deduction: 75000\n" +
		"  rebate_limit: 60000\n" +
		"  rebate_income_threshold: 1200000\n" +
		"  slabs:\n" +
		"    - {min: 0, max: 400000, rate: 0}\n" +
		"    - {min: 400000, max: 800000, rate: 5}\n" +
		"    - {min: 800000, max: 1200000, rate: 10}\n" +
		"    - {min: 1200000, max: 1600000, rate: 15}\n" +
		"    - {min: 1600000, max: 2000000, rate: 20}\n" +
		"    - {min: 2000000, max: 2400000, rate: 25}\n" +
		"    - {min: 2400000, rate: 30}\n"

	path := writeTemp(t, "rules.yaml", rulesYAML)
	parser := NewInputParser()
	rules, err := parser.LoadRulesFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-27", rules.AssessmentYear)
	assert.Len(t, rules.NewRegime.Slabs, 7)
	assert.True(t, rules.NewRegime.RebateLimit.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, domain.DefaultTaxRules().OldRegime, rules.OldRegime, "missing sections keep defaults")
	assert.Len(t, rules.AssetTypes, len(domain.DefaultAssetTypes()))
	assert.Same(t, rules, parser.Rules)
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, ValidateRules(domain.DefaultTaxRules()))

	gap := domain.DefaultTaxRules()
	gap.NewRegime.Slabs[2].Min = decimal.NewFromInt(750000)
	assert.ErrorIs(t, ValidateRules(gap), ErrInvalidRules)

	dup := domain.DefaultTaxRules()
	dup.AssetTypes = append(dup.AssetTypes, dup.AssetTypes[0])
	assert.ErrorIs(t, ValidateRules(dup), ErrInvalidRules)

	badRate := domain.DefaultTaxRules()
	badRate.OldRegime.Slabs[1].Rate = decimal.NewFromInt(150)
	assert.ErrorIs(t, ValidateRules(badRate), ErrInvalidRules)

	openMiddle := domain.DefaultTaxRules()
	openMiddle.OldRegime.Slabs[1].Max = decimal.Zero
	assert.ErrorIs(t, ValidateRules(openMiddle), ErrInvalidRules)
}

func TestWriteExampleProfileRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.WriteExampleProfile(path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	example := parser.CreateExampleProfile()
	assert.Equal(t, example.Name, loaded.Name)
	assert.True(t, example.Income.Salary.Equal(loaded.Income.Salary))
	require.NotNil(t, loaded.DateOfBirth)
	assert.True(t, example.DateOfBirth.Equal(loaded.DateOfBirth.Time))
}
