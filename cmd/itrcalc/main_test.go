package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in a clean working directory
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"ITR_RULES_FILE", "ITR_PORT", "ITR_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("ITR_LOG_LEVEL", "error")

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	out, err := runCLI(t, "example", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example profile written to "+path)
	return path
}

func TestComputeCommand(t *testing.T) {
	profile := writeExample(t)

	out, err := runCLI(t, "compute", "-i", profile, "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "INCOME TAX SUMMARY")
	assert.Contains(t, out, "Taxpayer: Priya Sharma")
	assert.Contains(t, out, "Recommended:")

	out, err = runCLI(t, "compute", "-i", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "DETAILED INCOME TAX COMPUTATION")
}

func TestComputeCommandWritesFiles(t *testing.T) {
	profile := writeExample(t)
	dir := t.TempDir()

	out, err := runCLI(t, "compute", "-i", profile, "-f", "all", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestComputeCommandErrors(t *testing.T) {
	profile := writeExample(t)

	_, err := runCLI(t, "compute", "-i", profile, "-f", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = runCLI(t, "compute")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)

	_, err = runCLI(t, "compute", "-i", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	profile := writeExample(t)

	out, err := runCLI(t, "compare", "-i", profile, "--json")
	require.NoError(t, err)
	var cmp domain.RegimeComparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.False(t, cmp.Savings.IsNegative())
	assert.Contains(t, []domain.Regime{domain.RegimeOld, domain.RegimeNew}, cmp.RecommendedRegime)

	out, err = runCLI(t, "compare", "-i", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "Old regime tax: ₹")
	assert.Contains(t, out, "New regime tax: ₹")
}

func TestValidateCommand(t *testing.T) {
	profile := writeExample(t)
	out, err := runCLI(t, "validate", "-i", profile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid for AY 2025-26")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pan: \"12345\"\n"), 0o644))
	_, err = runCLI(t, "validate", "-i", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestAssetTypesCommand(t *testing.T) {
	out, err := runCLI(t, "asset-types")
	require.NoError(t, err)
	assert.Contains(t, out, "Asset types for AY 2025-26")
	assert.Contains(t, out, "equity_shares")
	assert.Contains(t, out, "slab")
	assert.Contains(t, out, "₹1,00,000.00")
}

func TestRulesFlag(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("assessment_year: \"2026-27\"\n"), 0o644))

	out, err := runCLI(t, "--rules", rules, "asset-types")
	require.NoError(t, err)
	assert.Contains(t, out, "Asset types for AY 2026-27")

	_, err = runCLI(t, "--rules", filepath.Join(t.TempDir(), "missing.yaml"), "asset-types")
	assert.Error(t, err)
}

func TestDeductionCommands(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    []string
		description string
	}{
		{
			name:        "HRA metro",
			args:        []string{"deduction", "hra", "--hra", "240000", "--rent", "300000", "--basic", "600000", "--metro"},
			contains:    []string{"HRA exemption: ₹2,40,000.00", "Taxable HRA:   ₹0.00"},
			description: "Least of received, rent over 10% of basic, 50% of basic",
		},
		{
			name:        "HRA non-metro",
			args:        []string{"deduction", "hra", "--hra", "300000", "--rent", "300000", "--basic", "600000"},
			contains:    []string{"HRA exemption: ₹2,40,000.00", "Taxable HRA:   ₹60,000.00"},
			description: "40% of basic binds outside metros",
		},
		{
			name:        "80C group limit",
			args:        []string{"deduction", "80c", "--ppf", "100000", "--elss", "100000"},
			contains:    []string{"Total claimed: ₹2,00,000.00", "Eligible:      ₹1,50,000.00"},
			description: "Group limit caps the total",
		},
		{
			name:        "Gratuity by years",
			args:        []string{"deduction", "gratuity", "--received", "1000000", "--salary", "52000", "--years", "10"},
			contains:    []string{"Gratuity exemption: ₹3,00,000.00", "Taxable gratuity:   ₹7,00,000.00"},
			description: "15/26 of monthly salary per year of service",
		},
		{
			name:        "Gratuity by service dates",
			args:        []string{"deduction", "gratuity", "--received", "1000000", "--salary", "52000", "--joined", "2014-06-01", "--left", "2025-01-15"},
			contains:    []string{"Years of service:   11", "Gratuity exemption: ₹3,30,000.00"},
			description: "A part year over six months counts as a full year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err, tt.description)
			for _, s := range tt.contains {
				assert.Contains(t, out, s, tt.description)
			}
		})
	}

	_, err := runCLI(t, "deduction", "hra", "--hra", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --hra")

	_, err = runCLI(t, "deduction", "gratuity", "--joined", "2014-06-01")
	assert.Error(t, err)
}
