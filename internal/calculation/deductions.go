package calculation

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// DEDUCTION ASSUMPTIONS:
//
// 1. Inputs are raw claimed amounts; each calculator returns the eligible amount
//    and never a negative number.
//
// 2. Chapter VI-A deductions apply only to the old regime. The new regime keeps
//    the standard deduction, gratuity, leave encashment, professional tax and
//    meal vouchers.

// DeductionCalculator applies statutory caps from a DeductionLimits table
type DeductionCalculator struct {
	Limits domain.DeductionLimits
}

// NewDeductionCalculator creates a deduction calculator with configurable limits
func NewDeductionCalculator(limits domain.DeductionLimits) *DeductionCalculator {
	return &DeductionCalculator{Limits: limits}
}

func capAt(amount, ceiling decimal.Decimal) decimal.Decimal {
	return decimal.Min(nonNegative(amount), ceiling)
}

// HRAInput describes a house rent allowance claim
type HRAInput struct {
	HRAReceived decimal.Decimal `json:"hra_received" yaml:"hra_received"`
	RentPaid    decimal.Decimal `json:"rent_paid" yaml:"rent_paid"`
	BasicSalary decimal.Decimal `json:"basic_salary" yaml:"basic_salary"`
	IsMetro     bool            `json:"is_metro" yaml:"is_metro"`
}

// CalculateHRAExemption returns the least of HRA received, rent paid in excess of
// 10% of basic, and 50% (metro) or 40% of basic
func CalculateHRAExemption(in HRAInput) decimal.Decimal {
	cityRate := decimal.NewFromInt(40)
	if in.IsMetro {
		cityRate = decimal.NewFromInt(50)
	}
	rentExcess := in.RentPaid.Sub(percentOf(in.BasicSalary, decimal.NewFromInt(10)))
	exempt := decimal.Min(in.HRAReceived, rentExcess, percentOf(in.BasicSalary, cityRate))
	return nonNegative(exempt)
}

// Section80CInput lists the instruments sharing the 80C group limit. Fields are
// allocated against the limit in declaration order.
type Section80CInput struct {
	PPF               decimal.Decimal `json:"ppf" yaml:"ppf"`
	ELSS              decimal.Decimal `json:"elss" yaml:"elss"`
	LifeInsurance     decimal.Decimal `json:"life_insurance" yaml:"life_insurance"`
	NSC               decimal.Decimal `json:"nsc" yaml:"nsc"`
	TuitionFees       decimal.Decimal `json:"tuition_fees" yaml:"tuition_fees"`
	HomeLoanPrincipal decimal.Decimal `json:"home_loan_principal" yaml:"home_loan_principal"`
	SukanyaSamriddhi  decimal.Decimal `json:"sukanya_samriddhi" yaml:"sukanya_samriddhi"`
	TaxSaverFD        decimal.Decimal `json:"tax_saver_fd" yaml:"tax_saver_fd"`
	EPF               decimal.Decimal `json:"epf" yaml:"epf"`
	Other             decimal.Decimal `json:"other" yaml:"other"`
	Section80CCC      decimal.Decimal `json:"section_80ccc" yaml:"section_80ccc"`
	Section80CCD1     decimal.Decimal `json:"section_80ccd1" yaml:"section_80ccd1"`
}

func (in Section80CInput) items() []struct {
	name   string
	amount decimal.Decimal
} {
	return []struct {
		name   string
		amount decimal.Decimal
	}{
		{"ppf", in.PPF},
		{"elss", in.ELSS},
		{"life_insurance", in.LifeInsurance},
		{"nsc", in.NSC},
		{"tuition_fees", in.TuitionFees},
		{"home_loan_principal", in.HomeLoanPrincipal},
		{"sukanya_samriddhi", in.SukanyaSamriddhi},
		{"tax_saver_fd", in.TaxSaverFD},
		{"epf", in.EPF},
		{"other", in.Other},
		{"section_80ccc", in.Section80CCC},
		{"section_80ccd1", in.Section80CCD1},
	}
}

// Allocation is the share of a group limit given to one claimed item
type Allocation struct {
	Item    string          `json:"item" yaml:"item"`
	Claimed decimal.Decimal `json:"claimed" yaml:"claimed"`
	Allowed decimal.Decimal `json:"allowed" yaml:"allowed"`
}

// Section80CResult is the outcome of the 80C group allocation
type Section80CResult struct {
	Claimed     decimal.Decimal `json:"claimed" yaml:"claimed"`
	Eligible    decimal.Decimal `json:"eligible" yaml:"eligible"`
	Allocations []Allocation    `json:"allocations" yaml:"allocations"`
}

// Section80C allocates the group limit by running total in field order
func (dc *DeductionCalculator) Section80C(in Section80CInput) Section80CResult {
	result := Section80CResult{}
	remaining := dc.Limits.Section80CGroup
	for _, item := range in.items() {
		claimed := nonNegative(item.amount)
		if claimed.IsZero() {
			continue
		}
		allowed := decimal.Min(claimed, remaining)
		remaining = remaining.Sub(allowed)
		result.Claimed = result.Claimed.Add(claimed)
		result.Eligible = result.Eligible.Add(allowed)
		result.Allocations = append(result.Allocations, Allocation{Item: item.name, Claimed: claimed, Allowed: allowed})
	}
	return result
}

// Section80DInput describes health insurance premiums paid
type Section80DInput struct {
	SelfPremium       decimal.Decimal `json:"self_premium" yaml:"self_premium"`
	ParentsPremium    decimal.Decimal `json:"parents_premium" yaml:"parents_premium"`
	PreventiveCheckup decimal.Decimal `json:"preventive_checkup" yaml:"preventive_checkup"`
	SelfSenior        bool            `json:"self_senior" yaml:"self_senior"`
	ParentsSenior     bool            `json:"parents_senior" yaml:"parents_senior"`
}

// Section80DResult splits the 80D deduction by component
type Section80DResult struct {
	Self              decimal.Decimal `json:"self" yaml:"self"`
	Parents           decimal.Decimal `json:"parents" yaml:"parents"`
	PreventiveCheckup decimal.Decimal `json:"preventive_checkup" yaml:"preventive_checkup"`
	Total             decimal.Decimal `json:"total" yaml:"total"`
}

// Section80D caps self and parents premiums separately. The preventive checkup
// allowance counts against whatever is left of the self limit.
func (dc *DeductionCalculator) Section80D(in Section80DInput) Section80DResult {
	selfLimit := dc.Limits.Section80DSelf
	if in.SelfSenior {
		selfLimit = dc.Limits.Section80DSelfSenior
	}
	parentsLimit := dc.Limits.Section80DParents
	if in.ParentsSenior {
		parentsLimit = dc.Limits.Section80DParentsSenior
	}

	self := capAt(in.SelfPremium, selfLimit)
	checkup := decimal.Min(capAt(in.PreventiveCheckup, dc.Limits.PreventiveCheckup), selfLimit.Sub(self))
	parents := capAt(in.ParentsPremium, parentsLimit)

	return Section80DResult{
		Self:              self,
		Parents:           parents,
		PreventiveCheckup: checkup,
		Total:             self.Add(parents).Add(checkup),
	}
}

// Section80DMax is the most 80D can ever yield: senior self plus senior parents
func (dc *DeductionCalculator) Section80DMax() decimal.Decimal {
	return dc.Limits.Section80DSelfSenior.Add(dc.Limits.Section80DParentsSenior)
}

// Section80DDB caps medical treatment expenses by age
func (dc *DeductionCalculator) Section80DDB(amount decimal.Decimal, age int) decimal.Decimal {
	if age >= 60 {
		return capAt(amount, dc.Limits.Section80DDBSenior)
	}
	return capAt(amount, dc.Limits.Section80DDB)
}

// DisabilityInput selects the fixed 80U or 80DD amount
type DisabilityInput struct {
	Severe bool `json:"severe" yaml:"severe"`
}

// Section80U returns the fixed deduction for a taxpayer with a disability
func (dc *DeductionCalculator) Section80U(in DisabilityInput) decimal.Decimal {
	if in.Severe {
		return dc.Limits.DisabilitySevere
	}
	return dc.Limits.DisabilityNormal
}

// Section80DD returns the fixed deduction for maintaining a dependant with a disability
func (dc *DeductionCalculator) Section80DD(in DisabilityInput) decimal.Decimal {
	return dc.Section80U(in)
}

// CalculateSection80E returns education loan interest; it has no cap
func CalculateSection80E(interest decimal.Decimal) decimal.Decimal {
	return nonNegative(interest)
}

// Section80EE caps interest on a first home loan sanctioned under 80EE
func (dc *DeductionCalculator) Section80EE(interest decimal.Decimal) decimal.Decimal {
	return capAt(interest, dc.Limits.Section80EE)
}

// Section80EEA caps interest on an affordable housing loan
func (dc *DeductionCalculator) Section80EEA(interest decimal.Decimal) decimal.Decimal {
	return capAt(interest, dc.Limits.Section80EEA)
}

// DonationCategory is the 80G treatment of a donee
type DonationCategory string

const (
	Donation100NoLimit   DonationCategory = "100_no_limit"
	Donation50NoLimit    DonationCategory = "50_no_limit"
	Donation100WithLimit DonationCategory = "100_with_limit"
	Donation50WithLimit  DonationCategory = "50_with_limit"
)

// Donation is a single 80G donation
type Donation struct {
	Amount   decimal.Decimal  `json:"amount" yaml:"amount"`
	Category DonationCategory `json:"category" yaml:"category"`
}

// Section80GInput lists donations and the adjusted gross total income that sets
// the qualifying limit
type Section80GInput struct {
	Donations                []Donation      `json:"donations" yaml:"donations"`
	AdjustedGrossTotalIncome decimal.Decimal `json:"adjusted_gross_total_income" yaml:"adjusted_gross_total_income"`
}

// Section80G computes the donation deduction. Donations subject to the
// qualifying limit share one limit, filled by 100% donations before 50% ones.
// Unknown categories are treated as 50% with limit.
func (dc *DeductionCalculator) Section80G(in Section80GInput) decimal.Decimal {
	fifty := decimal.NewFromInt(50)
	total := decimal.Zero
	var limited100, limited50 decimal.Decimal

	for _, d := range in.Donations {
		amount := nonNegative(d.Amount)
		switch d.Category {
		case Donation100NoLimit:
			total = total.Add(amount)
		case Donation50NoLimit:
			total = total.Add(percentOf(amount, fifty))
		case Donation100WithLimit:
			limited100 = limited100.Add(amount)
		default:
			limited50 = limited50.Add(amount)
		}
	}

	qualifying := dc.Section80GQualifyingLimit(in.AdjustedGrossTotalIncome)
	full := decimal.Min(limited100, qualifying)
	half := decimal.Min(limited50, qualifying.Sub(full))
	return total.Add(full).Add(percentOf(half, fifty))
}

// Section80GQualifyingLimit is the configured share of adjusted gross total income
func (dc *DeductionCalculator) Section80GQualifyingLimit(adjustedGTI decimal.Decimal) decimal.Decimal {
	return percentOf(nonNegative(adjustedGTI), dc.Limits.Section80GQualifyingPct)
}

// Section80GGInput describes rent paid by a taxpayer who receives no HRA
type Section80GGInput struct {
	RentPaid            decimal.Decimal `json:"rent_paid" yaml:"rent_paid"`
	AdjustedTotalIncome decimal.Decimal `json:"adjusted_total_income" yaml:"adjusted_total_income"`
	Months              int             `json:"months" yaml:"months"`
}

// Section80GG returns the least of the monthly ceiling for the period, 25% of
// adjusted total income, and rent in excess of 10% of adjusted total income
func (dc *DeductionCalculator) Section80GG(in Section80GGInput) decimal.Decimal {
	months := in.Months
	if months <= 0 || months > 12 {
		months = 12
	}
	income := nonNegative(in.AdjustedTotalIncome)
	ceiling := dc.Limits.Section80GGMonthly.Mul(decimal.NewFromInt(int64(months)))
	quarter := percentOf(income, decimal.NewFromInt(25))
	rentExcess := in.RentPaid.Sub(percentOf(income, decimal.NewFromInt(10)))
	return nonNegative(decimal.Min(ceiling, quarter, rentExcess))
}

// InterestDeduction applies 80TTA below 60 and 80TTB from 60
func (dc *DeductionCalculator) InterestDeduction(interest decimal.Decimal, age int) decimal.Decimal {
	if age >= 60 {
		return capAt(interest, dc.Limits.Section80TTB)
	}
	return capAt(interest, dc.Limits.Section80TTA)
}

// HomeLoanInterest caps self-occupied home loan interest
func (dc *DeductionCalculator) HomeLoanInterest(interest decimal.Decimal) decimal.Decimal {
	return capAt(interest, dc.Limits.HomeLoanInterest)
}

// NPSAdditional caps the 80CCD(1B) contribution, outside the 80C group limit
func (dc *DeductionCalculator) NPSAdditional(contribution decimal.Decimal) decimal.Decimal {
	return capAt(contribution, dc.Limits.NPSAdditional)
}

// ProfessionalTax caps the state professional tax deductible from salary
func (dc *DeductionCalculator) ProfessionalTax(paid decimal.Decimal) decimal.Decimal {
	return capAt(paid, dc.Limits.ProfessionalTax)
}

// Section80CCG caps the Rajiv Gandhi equity savings scheme deduction
func (dc *DeductionCalculator) Section80CCG(amount decimal.Decimal) decimal.Decimal {
	return capAt(amount, dc.Limits.Section80CCG)
}

// GratuityInput describes gratuity received on leaving employment
type GratuityInput struct {
	Received       decimal.Decimal `json:"received" yaml:"received"`
	MonthlySalary  decimal.Decimal `json:"monthly_salary" yaml:"monthly_salary"`
	YearsOfService int             `json:"years_of_service" yaml:"years_of_service"`
}

// GratuityExemption returns the least of gratuity received, 15/26 of monthly
// salary per year of service, and the statutory ceiling
func (dc *DeductionCalculator) GratuityExemption(in GratuityInput) decimal.Decimal {
	if in.YearsOfService <= 0 {
		return decimal.Zero
	}
	formula := in.MonthlySalary.
		Mul(decimal.NewFromInt(15)).
		Mul(decimal.NewFromInt(int64(in.YearsOfService))).
		Div(decimal.NewFromInt(26))
	return nonNegative(decimal.Min(in.Received, formula, dc.Limits.Gratuity))
}

// LeaveEncashmentInput describes leave salary received on retirement
type LeaveEncashmentInput struct {
	Received             decimal.Decimal `json:"received" yaml:"received"`
	AverageMonthlySalary decimal.Decimal `json:"average_monthly_salary" yaml:"average_monthly_salary"`
	LeaveDays            int             `json:"leave_days" yaml:"leave_days"`
}

// LeaveEncashmentExemption returns the least of the amount received, ten months
// of average salary, the cash value of leave at credit, and the ceiling
func (dc *DeductionCalculator) LeaveEncashmentExemption(in LeaveEncashmentInput) decimal.Decimal {
	tenMonths := in.AverageMonthlySalary.Mul(decimal.NewFromInt(10))
	leaveValue := in.AverageMonthlySalary.Mul(decimal.NewFromInt(int64(in.LeaveDays))).Div(decimal.NewFromInt(30))
	return nonNegative(decimal.Min(in.Received, tenMonths, leaveValue, dc.Limits.LeaveEncashment))
}

// AllowanceInput describes salary allowances with fixed exemptions
type AllowanceInput struct {
	Children       int             `json:"children" yaml:"children"`
	HostelChildren int             `json:"hostel_children" yaml:"hostel_children"`
	Months         int             `json:"months" yaml:"months"`
	LTAReceived    decimal.Decimal `json:"lta_received" yaml:"lta_received"`
	LTATravelCost  decimal.Decimal `json:"lta_travel_cost" yaml:"lta_travel_cost"`
}

// AllowanceExemption splits exempt allowances by kind
type AllowanceExemption struct {
	ChildrenEducation decimal.Decimal `json:"children_education" yaml:"children_education"`
	Hostel            decimal.Decimal `json:"hostel" yaml:"hostel"`
	LTA               decimal.Decimal `json:"lta" yaml:"lta"`
	Total             decimal.Decimal `json:"total" yaml:"total"`
}

// CalculateAllowanceExemptions applies the per child education and hostel
// allowances for at most two children, and limits LTA to the actual travel cost
func CalculateAllowanceExemptions(in AllowanceInput) AllowanceExemption {
	months := in.Months
	if months <= 0 || months > 12 {
		months = 12
	}
	children := min(max(in.Children, 0), 2)
	hostel := min(max(in.HostelChildren, 0), 2)

	m := decimal.NewFromInt(int64(months))
	education := decimal.NewFromInt(int64(100 * children)).Mul(m)
	hostelAmt := decimal.NewFromInt(int64(300 * hostel)).Mul(m)
	lta := nonNegative(decimal.Min(in.LTAReceived, in.LTATravelCost))

	return AllowanceExemption{
		ChildrenEducation: education,
		Hostel:            hostelAmt,
		LTA:               lta,
		Total:             education.Add(hostelAmt).Add(lta),
	}
}

// StandardDeduction returns the regime's standard deduction, limited to salary
func (tc *TaxCalculator) StandardDeduction(regime domain.Regime, salary decimal.Decimal) decimal.Decimal {
	return capAt(salary, tc.Rules.Regime(regime).StandardDeduction)
}

// Package level calculators using the built-in limits.

func defaultDeductions() *DeductionCalculator { return defaultCalculator.Deductions }

// CalculateSection80C allocates the 80C group limit using the built-in limits
func CalculateSection80C(in Section80CInput) Section80CResult {
	return defaultDeductions().Section80C(in)
}

// CalculateSection80D computes the health insurance deduction using the built-in limits
func CalculateSection80D(in Section80DInput) Section80DResult {
	return defaultDeductions().Section80D(in)
}

// CalculateSection80DDB caps medical treatment expenses using the built-in limits
func CalculateSection80DDB(amount decimal.Decimal, age int) decimal.Decimal {
	return defaultDeductions().Section80DDB(amount, age)
}

// CalculateSection80U returns the built-in 80U amount
func CalculateSection80U(in DisabilityInput) decimal.Decimal {
	return defaultDeductions().Section80U(in)
}

// CalculateSection80DD returns the built-in 80DD amount
func CalculateSection80DD(in DisabilityInput) decimal.Decimal {
	return defaultDeductions().Section80DD(in)
}

// CalculateSection80EE caps 80EE interest using the built-in limit
func CalculateSection80EE(interest decimal.Decimal) decimal.Decimal {
	return defaultDeductions().Section80EE(interest)
}

// CalculateSection80EEA caps 80EEA interest using the built-in limit
func CalculateSection80EEA(interest decimal.Decimal) decimal.Decimal {
	return defaultDeductions().Section80EEA(interest)
}

// CalculateSection80G computes the donation deduction using the built-in qualifying percentage
func CalculateSection80G(in Section80GInput) decimal.Decimal {
	return defaultDeductions().Section80G(in)
}

// CalculateSection80GG computes the rent deduction using the built-in monthly ceiling
func CalculateSection80GG(in Section80GGInput) decimal.Decimal {
	return defaultDeductions().Section80GG(in)
}

// CalculateInterestDeduction applies 80TTA or 80TTB using the built-in limits
func CalculateInterestDeduction(interest decimal.Decimal, age int) decimal.Decimal {
	return defaultDeductions().InterestDeduction(interest, age)
}

// CalculateHomeLoanInterest caps self-occupied home loan interest using the built-in limit
func CalculateHomeLoanInterest(interest decimal.Decimal) decimal.Decimal {
	return defaultDeductions().HomeLoanInterest(interest)
}

// CalculateNPSAdditional caps the 80CCD(1B) contribution using the built-in limit
func CalculateNPSAdditional(contribution decimal.Decimal) decimal.Decimal {
	return defaultDeductions().NPSAdditional(contribution)
}

// CalculateProfessionalTax caps professional tax using the built-in limit
func CalculateProfessionalTax(paid decimal.Decimal) decimal.Decimal {
	return defaultDeductions().ProfessionalTax(paid)
}

// CalculateGratuityExemption computes the gratuity exemption using the built-in ceiling
func CalculateGratuityExemption(in GratuityInput) decimal.Decimal {
	return defaultDeductions().GratuityExemption(in)
}

// CalculateLeaveEncashmentExemption computes the leave encashment exemption using the built-in ceiling
func CalculateLeaveEncashmentExemption(in LeaveEncashmentInput) decimal.Decimal {
	return defaultDeductions().LeaveEncashmentExemption(in)
}

// CalculateStandardDeduction returns the built-in standard deduction for regime, limited to salary
func CalculateStandardDeduction(regime domain.Regime, salary decimal.Decimal) decimal.Decimal {
	return defaultCalculator.StandardDeduction(regime, salary)
}
