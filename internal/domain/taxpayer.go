package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Regime identifies one of the two mutually exclusive tax computation schemes
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// ParseRegime resolves a user supplied regime name
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old", "old_regime", "old-regime":
		return RegimeOld, nil
	case "new", "new_regime", "new-regime":
		return RegimeNew, nil
	}
	return "", fmt.Errorf("unknown regime %q", s)
}

// UnmarshalYAML accepts the same aliases as ParseRegime
func (r *Regime) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseRegime(value.Value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// IncomeData holds the income heads of a single financial year.
// BasicSalary is only an input to the HRA computation and never part of gross income.
type IncomeData struct {
	Salary            decimal.Decimal    `yaml:"salary" json:"salary"`
	BasicSalary       decimal.Decimal    `yaml:"basic_salary" json:"basic_salary"`
	BusinessIncome    decimal.Decimal    `yaml:"business_income" json:"business_income"`
	SpeculativeIncome decimal.Decimal    `yaml:"speculative_income,omitempty" json:"speculative_income,omitempty"`
	OtherSources      decimal.Decimal    `yaml:"other_sources" json:"other_sources"`
	CapitalGains      []CapitalGain      `yaml:"capital_gains,omitempty" json:"capital_gains,omitempty"`
	HouseProperty     *HousePropertyData `yaml:"house_property,omitempty" json:"house_property,omitempty"`
}

// CapitalGain is a single realised gain; AssetType refers to an AssetType id
type CapitalGain struct {
	AssetType    string          `yaml:"asset_type" json:"asset_type"`
	IsLongTerm   bool            `yaml:"is_long_term" json:"is_long_term"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	PurchaseDate *Date           `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	SaleDate     *Date           `yaml:"sale_date,omitempty" json:"sale_date,omitempty"`
}

// HousePropertyData describes a single house property
type HousePropertyData struct {
	AnnualRentReceived decimal.Decimal `yaml:"annual_rent_received" json:"annual_rent_received"`
	MunicipalTaxes     decimal.Decimal `yaml:"municipal_taxes" json:"municipal_taxes"`
	RepairMaintenance  decimal.Decimal `yaml:"repair_maintenance" json:"repair_maintenance"`
	InterestOnLoan     decimal.Decimal `yaml:"interest_on_loan" json:"interest_on_loan"`
	OtherExpenses      decimal.Decimal `yaml:"other_expenses" json:"other_expenses"`
	IsLetOut           bool            `yaml:"is_let_out" json:"is_let_out"`
	SelfOccupiedCount  int             `yaml:"self_occupied_count" json:"self_occupied_count"`
}

// DeductionData carries the eligible amount claimed under each section.
// Section specific capping is done by the calculators, not here.
type DeductionData struct {
	Section80C       decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80CCC     decimal.Decimal `yaml:"section_80ccc" json:"section_80ccc"`
	Section80CCD     decimal.Decimal `yaml:"section_80ccd" json:"section_80ccd"` // 80CCD(1), shares the 80C limit
	Section80D       decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	HRA              decimal.Decimal `yaml:"hra" json:"hra"`
	LTA              decimal.Decimal `yaml:"lta" json:"lta"`
	HomeLoanInterest decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"`
	Section80TTA     decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	NPS              decimal.Decimal `yaml:"nps" json:"nps"` // 80CCD(1B)
	ProfessionalTax  decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	Section80E       decimal.Decimal `yaml:"section_80e" json:"section_80e"`
	Section80G       decimal.Decimal `yaml:"section_80g" json:"section_80g"`
	Section80GG      decimal.Decimal `yaml:"section_80gg,omitempty" json:"section_80gg,omitempty"`
	Section80EE      decimal.Decimal `yaml:"section_80ee" json:"section_80ee"`
	Section80EEA     decimal.Decimal `yaml:"section_80eea" json:"section_80eea"`
	Section80U       decimal.Decimal `yaml:"section_80u" json:"section_80u"`
	Section80DD      decimal.Decimal `yaml:"section_80dd,omitempty" json:"section_80dd,omitempty"`
	Section80DDB     decimal.Decimal `yaml:"section_80ddb" json:"section_80ddb"`
	Section80CCG     decimal.Decimal `yaml:"section_80ccg" json:"section_80ccg"`
	Gratuity         decimal.Decimal `yaml:"gratuity" json:"gratuity"`
	LeaveEncashment  decimal.Decimal `yaml:"leave_encashment" json:"leave_encashment"`
	MealVouchers     decimal.Decimal `yaml:"meal_vouchers,omitempty" json:"meal_vouchers,omitempty"`
}

// CarryForwardLoss is the unabsorbed loss of one earlier assessment year ("YYYY-YY")
type CarryForwardLoss struct {
	AssessmentYear     string          `yaml:"assessment_year" json:"assessment_year"`
	ShortTermLoss      decimal.Decimal `yaml:"short_term_loss" json:"short_term_loss"`
	LongTermLoss       decimal.Decimal `yaml:"long_term_loss" json:"long_term_loss"`
	BusinessLoss       decimal.Decimal `yaml:"business_loss" json:"business_loss"`
	HousePropertyLoss  decimal.Decimal `yaml:"house_property_loss" json:"house_property_loss"`
	SpeculativeLoss    decimal.Decimal `yaml:"speculative_loss" json:"speculative_loss"`
	NonSpeculativeLoss decimal.Decimal `yaml:"non_speculative_loss" json:"non_speculative_loss"`
}

// Total sums all six loss fields
func (l CarryForwardLoss) Total() decimal.Decimal {
	return l.ShortTermLoss.Add(l.LongTermLoss).Add(l.BusinessLoss).
		Add(l.HousePropertyLoss).Add(l.SpeculativeLoss).Add(l.NonSpeculativeLoss)
}

// IsZero reports whether every loss field is zero
func (l CarryForwardLoss) IsZero() bool {
	return l.ShortTermLoss.IsZero() && l.LongTermLoss.IsZero() && l.BusinessLoss.IsZero() &&
		l.HousePropertyLoss.IsZero() && l.SpeculativeLoss.IsZero() && l.NonSpeculativeLoss.IsZero()
}

// TDSData is tax deducted at source, by category
type TDSData struct {
	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	Interest         decimal.Decimal `yaml:"interest" json:"interest"`
	Rent             decimal.Decimal `yaml:"rent" json:"rent"`
	ProfessionalFees decimal.Decimal `yaml:"professional_fees" json:"professional_fees"`
	Commission       decimal.Decimal `yaml:"commission" json:"commission"`
	PropertySale     decimal.Decimal `yaml:"property_sale" json:"property_sale"`
	Other            decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums all TDS categories
func (t TDSData) Total() decimal.Decimal {
	return t.Salary.Add(t.Interest).Add(t.Rent).Add(t.ProfessionalFees).
		Add(t.Commission).Add(t.PropertySale).Add(t.Other)
}

// TCSData is tax collected at source, by category
type TCSData struct {
	ForeignRemittance decimal.Decimal `yaml:"foreign_remittance" json:"foreign_remittance"`
	MotorVehicle      decimal.Decimal `yaml:"motor_vehicle" json:"motor_vehicle"`
	SaleOfGoods       decimal.Decimal `yaml:"sale_of_goods" json:"sale_of_goods"`
	Other             decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums all TCS categories
func (t TCSData) Total() decimal.Decimal {
	return t.ForeignRemittance.Add(t.MotorVehicle).Add(t.SaleOfGoods).Add(t.Other)
}

// TaxpayerProfile is everything needed to compute one return under both regimes
type TaxpayerProfile struct {
	Name               string             `yaml:"name" json:"name"`
	PAN                string             `yaml:"pan,omitempty" json:"pan,omitempty"`
	AssessmentYear     string             `yaml:"assessment_year" json:"assessment_year"`
	Age                int                `yaml:"age,omitempty" json:"age,omitempty"`
	DateOfBirth        *Date              `yaml:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Income             IncomeData         `yaml:"income" json:"income"`
	Deductions         DeductionData      `yaml:"deductions" json:"deductions"`
	TDS                TDSData            `yaml:"tds" json:"tds"`
	TCS                TCSData            `yaml:"tcs" json:"tcs"`
	CarryForwardLosses []CarryForwardLoss `yaml:"carry_forward_losses,omitempty" json:"carry_forward_losses,omitempty"`
}
