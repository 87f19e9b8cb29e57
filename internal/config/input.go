package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRules marks a rules file that cannot be used for computation
var ErrInvalidRules = errors.New("invalid tax rules")

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// InputParser handles parsing of taxpayer profiles and tax rules files
type InputParser struct {
	Rules *domain.TaxRules
}

// NewInputParser creates a new input parser validating against the built-in rules
func NewInputParser() *InputParser {
	return &InputParser{Rules: domain.DefaultTaxRules()}
}

// NewInputParserWithRules creates an input parser validating against rules
func NewInputParserWithRules(rules *domain.TaxRules) *InputParser {
	if rules == nil {
		return NewInputParser()
	}
	return &InputParser{Rules: rules}
}

// LoadFromFile loads a taxpayer profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxpayerProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a taxpayer profile
func (ip *InputParser) Parse(data []byte) (*domain.TaxpayerProfile, error) {
	var profile domain.TaxpayerProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidProfile, fmt.Sprintf(format, args...))
}

// ValidateProfile checks a profile before computation. Unknown asset types fail
// here even though the calculators themselves tolerate them.
func (ip *InputParser) ValidateProfile(profile *domain.TaxpayerProfile) error {
	if profile == nil {
		return invalid("profile is empty")
	}

	if profile.PAN != "" && !panPattern.MatchString(profile.PAN) {
		return invalid("PAN %q is not in the format AAAAA9999A", profile.PAN)
	}
	if profile.AssessmentYear != "" {
		if _, err := dateutil.ParseAssessmentYear(profile.AssessmentYear); err != nil {
			return invalid("%v", err)
		}
	}
	if profile.Age < 0 || profile.Age > 130 {
		return invalid("age must be between 0 and 130, got %d", profile.Age)
	}
	if profile.DateOfBirth != nil && profile.DateOfBirth.After(time.Now()) {
		return invalid("date of birth cannot be in the future")
	}

	if err := ip.validateIncome(&profile.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}
	if profile.AssessmentYear != "" {
		for i, gain := range profile.Income.CapitalGains {
			if gain.SaleDate == nil {
				continue
			}
			if ay := dateutil.AssessmentYearFor(gain.SaleDate.Time); ay != profile.AssessmentYear {
				return invalid("capital gain %d: sale date %s is assessed in AY %s, not %s",
					i, gain.SaleDate, ay, profile.AssessmentYear)
			}
		}
	}
	if err := validateNonNegative("deduction", deductionFields(&profile.Deductions)); err != nil {
		return fmt.Errorf("deductions validation failed: %w", err)
	}
	if err := validateNonNegative("tds", tdsFields(&profile.TDS)); err != nil {
		return err
	}
	if err := validateNonNegative("tcs", tcsFields(&profile.TCS)); err != nil {
		return err
	}

	for i, loss := range profile.CarryForwardLosses {
		if err := validateLoss(loss); err != nil {
			return fmt.Errorf("carry forward loss %d validation failed: %w", i, err)
		}
	}

	return nil
}

// validateIncome validates the income heads
func (ip *InputParser) validateIncome(income *domain.IncomeData) error {
	if income.Salary.LessThan(decimal.Zero) {
		return invalid("salary cannot be negative")
	}
	if income.BasicSalary.LessThan(decimal.Zero) {
		return invalid("basic salary cannot be negative")
	}
	if income.BasicSalary.GreaterThan(income.Salary) && income.Salary.IsPositive() {
		return invalid("basic salary %s exceeds salary %s", income.BasicSalary, income.Salary)
	}
	if income.OtherSources.LessThan(decimal.Zero) {
		return invalid("income from other sources cannot be negative")
	}

	for i, gain := range income.CapitalGains {
		if _, ok := ip.Rules.LookupAssetType(gain.AssetType); !ok {
			return fmt.Errorf("capital gain %d: %w %q", i, domain.ErrUnknownAssetType, gain.AssetType)
		}
		if gain.PurchaseDate != nil && gain.SaleDate != nil && gain.SaleDate.Before(gain.PurchaseDate.Time) {
			return invalid("capital gain %d: sale date is before purchase date", i)
		}
	}

	if hp := income.HouseProperty; hp != nil {
		if hp.SelfOccupiedCount < 0 {
			return invalid("self-occupied property count cannot be negative")
		}
		if err := validateNonNegative("house property", map[string]decimal.Decimal{
			"annual_rent_received": hp.AnnualRentReceived,
			"municipal_taxes":      hp.MunicipalTaxes,
			"repair_maintenance":   hp.RepairMaintenance,
			"interest_on_loan":     hp.InterestOnLoan,
			"other_expenses":       hp.OtherExpenses,
		}); err != nil {
			return err
		}
	}

	return nil
}

func validateLoss(loss domain.CarryForwardLoss) error {
	if _, err := dateutil.ParseAssessmentYear(loss.AssessmentYear); err != nil {
		return invalid("%v", err)
	}
	return validateNonNegative("loss", map[string]decimal.Decimal{
		"short_term_loss":      loss.ShortTermLoss,
		"long_term_loss":       loss.LongTermLoss,
		"business_loss":        loss.BusinessLoss,
		"house_property_loss":  loss.HousePropertyLoss,
		"speculative_loss":     loss.SpeculativeLoss,
		"non_speculative_loss": loss.NonSpeculativeLoss,
	})
}

func validateNonNegative(kind string, fields map[string]decimal.Decimal) error {
	for name, value := range fields {
		if value.IsNegative() {
			return invalid("%s %s cannot be negative", kind, name)
		}
	}
	return nil
}

func deductionFields(d *domain.DeductionData) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"section_80c":        d.Section80C,
		"section_80ccc":      d.Section80CCC,
		"section_80ccd":      d.Section80CCD,
		"section_80d":        d.Section80D,
		"hra":                d.HRA,
		"lta":                d.LTA,
		"home_loan_interest": d.HomeLoanInterest,
		"section_80tta":      d.Section80TTA,
		"nps":                d.NPS,
		"professional_tax":   d.ProfessionalTax,
		"section_80e":        d.Section80E,
		"section_80g":        d.Section80G,
		"section_80gg":       d.Section80GG,
		"section_80ee":       d.Section80EE,
		"section_80eea":      d.Section80EEA,
		"section_80u":        d.Section80U,
		"section_80dd":       d.Section80DD,
		"section_80ddb":      d.Section80DDB,
		"section_80ccg":      d.Section80CCG,
		"gratuity":           d.Gratuity,
		"leave_encashment":   d.LeaveEncashment,
		"meal_vouchers":      d.MealVouchers,
	}
}

func tdsFields(t *domain.TDSData) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"salary":            t.Salary,
		"interest":          t.Interest,
		"rent":              t.Rent,
		"professional_fees": t.ProfessionalFees,
		"commission":        t.Commission,
		"property_sale":     t.PropertySale,
		"other":             t.Other,
	}
}

func tcsFields(t *domain.TCSData) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"foreign_remittance": t.ForeignRemittance,
		"motor_vehicle":      t.MotorVehicle,
		"sale_of_goods":      t.SaleOfGoods,
		"other":              t.Other,
	}
}

// LoadRulesFromFile loads tax rules from YAML. Sections missing from the file
// keep their built-in values.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rules := domain.DefaultTaxRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	ip.Rules = rules
	return rules, nil
}

// ValidateRules checks that slab tables are ordered and contiguous and that the
// asset catalog is well formed
func ValidateRules(rules *domain.TaxRules) error {
	if _, err := dateutil.ParseAssessmentYear(rules.AssessmentYear); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	tables := map[string][]domain.TaxBracket{
		"old_regime.slabs":              rules.OldRegime.Slabs,
		"old_regime.senior_slabs":       rules.OldRegime.SeniorSlabs,
		"old_regime.super_senior_slabs": rules.OldRegime.SuperSeniorSlabs,
		"new_regime.slabs":              rules.NewRegime.Slabs,
		"new_regime.senior_slabs":       rules.NewRegime.SeniorSlabs,
		"new_regime.super_senior_slabs": rules.NewRegime.SuperSeniorSlabs,
	}
	for name, brackets := range tables {
		if err := validateBrackets(brackets); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRules, name, err)
		}
	}
	if len(rules.OldRegime.Slabs) == 0 || len(rules.NewRegime.Slabs) == 0 {
		return fmt.Errorf("%w: both regimes need slabs", ErrInvalidRules)
	}

	seen := make(map[string]bool)
	for _, at := range rules.AssetTypes {
		if at.ID == "" {
			return fmt.Errorf("%w: asset type without id", ErrInvalidRules)
		}
		if seen[at.ID] {
			return fmt.Errorf("%w: duplicate asset type %q", ErrInvalidRules, at.ID)
		}
		seen[at.ID] = true
		if !validRate(at.ShortTermRate) || !validRate(at.LongTermRate) {
			return fmt.Errorf("%w: asset type %q has a rate outside 0-100", ErrInvalidRules, at.ID)
		}
		if at.LongTermThreshold < 0 {
			return fmt.Errorf("%w: asset type %q has a negative holding threshold", ErrInvalidRules, at.ID)
		}
	}

	if !validRate(rules.CessRate) {
		return fmt.Errorf("%w: cess rate outside 0-100", ErrInvalidRules)
	}
	return nil
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}

func validateBrackets(brackets []domain.TaxBracket) error {
	for i, b := range brackets {
		if !validRate(b.Rate) {
			return fmt.Errorf("bracket %d rate %s outside 0-100", i, b.Rate)
		}
		if i == 0 && !b.Min.IsZero() {
			return fmt.Errorf("first bracket must start at zero")
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("bracket %d starts at %s but previous ends at %s", i, b.Min, brackets[i-1].Max)
		}
		if b.Unbounded() && i != len(brackets)-1 {
			return fmt.Errorf("only the last bracket may be unbounded")
		}
		if !b.Unbounded() && b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("bracket %d max must exceed min", i)
		}
	}
	return nil
}

// CreateExampleProfile creates an example taxpayer profile for testing
func (ip *InputParser) CreateExampleProfile() *domain.TaxpayerProfile {
	dob := domain.NewDate(time.Date(1988, 8, 14, 0, 0, 0, 0, time.UTC))
	purchase := domain.NewDate(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC))
	sale := domain.NewDate(time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC))

	return &domain.TaxpayerProfile{
		Name:           "Priya Sharma",
		PAN:            "ABCPS1234K",
		AssessmentYear: "2025-26",
		DateOfBirth:    dob,
		Income: domain.IncomeData{
			Salary:       decimal.NewFromInt(1800000),
			BasicSalary:  decimal.NewFromInt(900000),
			OtherSources: decimal.NewFromInt(45000),
			CapitalGains: []domain.CapitalGain{
				{AssetType: "equity_shares", Amount: decimal.NewFromInt(180000), PurchaseDate: purchase, SaleDate: sale},
				{AssetType: "debt_mutual_funds", Amount: decimal.NewFromInt(40000)},
			},
			HouseProperty: &domain.HousePropertyData{
				InterestOnLoan:    decimal.NewFromInt(160000),
				SelfOccupiedCount: 1,
			},
		},
		Deductions: domain.DeductionData{
			Section80C:      decimal.NewFromInt(150000),
			Section80D:      decimal.NewFromInt(25000),
			HRA:             decimal.NewFromInt(120000),
			Section80TTA:    decimal.NewFromInt(12000),
			NPS:             decimal.NewFromInt(50000),
			ProfessionalTax: decimal.NewFromInt(2500),
		},
		TDS: domain.TDSData{
			Salary:   decimal.NewFromInt(180000),
			Interest: decimal.NewFromInt(4500),
		},
		CarryForwardLosses: []domain.CarryForwardLoss{
			{AssessmentYear: "2023-24", ShortTermLoss: decimal.NewFromInt(20000)},
		},
	}
}

// WriteExampleProfile writes the example profile as YAML
func (ip *InputParser) WriteExampleProfile(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleProfile())
	if err != nil {
		return fmt.Errorf("failed to marshal example profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
