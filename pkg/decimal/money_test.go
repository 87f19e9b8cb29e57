package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func rupees(v int64) Money {
	return NewMoneyFromDecimal(stddec.NewFromInt(v))
}

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	d, err := stddec.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return NewMoneyFromDecimal(d)
}

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if got := m.Round().Decimal.StringFixed(2); got != "10.13" {
		t.Fatalf("Round got %s", got)
	}
}

func TestRoundToTen(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"32504", "32500.00"},
		{"32505", "32510.00"},
		{"32509.99", "32510.00"},
		{"0", "0.00"},
	}
	for _, c := range cases {
		if got := mustMoney(t, c.in).RoundToTen().Decimal.StringFixed(2); got != c.out {
			t.Fatalf("RoundToTen(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestFormatIndianGrouping(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{rupees(0), "₹0.00"},
		{rupees(999), "₹999.00"},
		{rupees(1000), "₹1,000.00"},
		{rupees(100000), "₹1,00,000.00"},
		{mustMoney(t, "1234567.5"), "₹12,34,567.50"},
		{rupees(123456789), "₹12,34,56,789.00"},
		{rupees(-250000), "-₹2,50,000.00"},
		{mustMoney(t, "-0.001"), "₹0.00"},
	}
	for _, c := range cases {
		if got := c.in.Format(); got != c.want {
			t.Fatalf("Format(%s) got %s want %s", c.in.Decimal, got, c.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := rupees(1235000).FormatCompact(); got != "₹12.35 L" {
		t.Fatalf("FormatCompact lakh got %s", got)
	}
	if got := rupees(15000000).FormatCompact(); got != "₹1.50 Cr" {
		t.Fatalf("FormatCompact crore got %s", got)
	}
	if got := rupees(-15000000).FormatCompact(); got != "-₹1.50 Cr" {
		t.Fatalf("FormatCompact negative got %s", got)
	}
	if got := rupees(5000).FormatCompact(); got != "₹5,000.00" {
		t.Fatalf("FormatCompact small got %s", got)
	}
}
