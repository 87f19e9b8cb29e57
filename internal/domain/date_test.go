package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "Day only", input: "2021-06-01", want: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339 UTC", input: "2021-06-01T00:00:00Z", want: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339 keeps the local day", input: "2024-11-15T23:30:00+05:30", want: time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Fractional seconds", input: "2024-11-15T10:00:00.123Z", want: time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Surrounding spaces", input: " 2020-02-29 ", want: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "Day first", input: "15/11/2024", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}
}

func TestDateJSON(t *testing.T) {
	var gain CapitalGain
	require.NoError(t, json.Unmarshal([]byte(`{"asset_type":"gold","amount":"1","purchase_date":"2021-06-01","sale_date":null}`), &gain))
	require.NotNil(t, gain.PurchaseDate)
	assert.Nil(t, gain.SaleDate)
	assert.Equal(t, "2021-06-01", gain.PurchaseDate.String())

	out, err := json.Marshal(gain)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"purchase_date":"2021-06-01"`)
	assert.NotContains(t, string(out), "sale_date")

	assert.Error(t, json.Unmarshal([]byte(`{"purchase_date":20210601}`), &gain))
}

func TestDateYAML(t *testing.T) {
	src := "name: Dev\n" +
		"date_of_birth: 1960-01-01\n" +
		"income:\n" +
		"  capital_gains:\n" +
		"    - asset_type: gold\n" +
		"      purchase_date: \"2019-04-01T09:00:00Z\"\n" +
		"      sale_date: 2024-05-20\n"
	var profile TaxpayerProfile
	require.NoError(t, yaml.Unmarshal([]byte(src), &profile))
	require.NotNil(t, profile.DateOfBirth)
	assert.Equal(t, 1960, profile.DateOfBirth.Year())
	require.Len(t, profile.Income.CapitalGains, 1)
	assert.Equal(t, "2019-04-01", profile.Income.CapitalGains[0].PurchaseDate.String())

	out, err := yaml.Marshal(profile)
	require.NoError(t, err)
	var again TaxpayerProfile
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.True(t, profile.DateOfBirth.Equal(again.DateOfBirth.Time))
	assert.True(t, profile.Income.CapitalGains[0].SaleDate.Equal(again.Income.CapitalGains[0].SaleDate.Time))

	assert.Error(t, yaml.Unmarshal([]byte("date_of_birth: yesterday\n"), &again))
}

func TestNewDateDropsTimeOfDay(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 31, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-31", d.String())
	assert.Zero(t, d.Hour())
}
