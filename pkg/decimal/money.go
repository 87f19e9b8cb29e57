package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// Money represents a rupee amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the amount to paise
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundToTen rounds to the nearest multiple of ten rupees, as done for total income and tax payable
func (m Money) RoundToTen() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(10)).Round(0).Mul(decimal.NewFromInt(10))}
}

// Format renders the amount in rupees with Indian digit grouping, e.g. ₹12,34,567.50
func (m Money) Format() string {
	s := m.Decimal.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-2:]
	sign := ""
	if m.Decimal.IsNegative() && !m.Round().Decimal.IsZero() {
		sign = "-"
	}
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// FormatCompact renders large amounts in lakh or crore, e.g. ₹12.35 L or ₹1.50 Cr
func (m Money) FormatCompact() string {
	abs := m.Decimal.Abs()
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + "₹" + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + "₹" + abs.Div(lakh).StringFixed(2) + " L"
	}
	return m.Format()
}

// groupIndian inserts commas after the last three digits and then every two digits
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
