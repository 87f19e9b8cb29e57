package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/itrdesk/tax-engine/internal/domain"
	money "github.com/itrdesk/tax-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed side by side computation.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED INCOME TAX COMPUTATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if report.TaxpayerName != "" {
		fmt.Fprintf(&buf, "Taxpayer:        %s\n", report.TaxpayerName)
	}
	fmt.Fprintf(&buf, "Assessment Year: %s\n", report.AssessmentYear)
	fmt.Fprintf(&buf, "Age:             %d\n", report.Age)
	fmt.Fprintf(&buf, "Report ID:       %s\n", report.ID)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeDetailedComparison(&buf, report)

	for _, r := range []domain.TaxResult{report.OldRegime, report.NewRegime} {
		writeRegimeDetail(&buf, r)
	}

	rec := AnalyzeReport(report)
	fmt.Fprintln(&buf, "RECOMMENDATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintln(&buf, rec.Explanation)
	if rec.Refund.IsPositive() {
		fmt.Fprintf(&buf, "Expected refund under the %s: %s\n", RegimeLabel(rec.Regime), FormatCurrency(rec.Refund))
	} else {
		fmt.Fprintf(&buf, "Net tax payable under the %s: %s (rounded u/s 288B: %s)\n", RegimeLabel(rec.Regime),
			FormatCurrency(rec.NetPayable), money.NewMoneyFromDecimal(rec.NetPayable).RoundToTen().Format())
	}
	return buf.Bytes(), nil
}

func writeDetailedComparison(buf *bytes.Buffer, report *domain.ComputationReport) {
	old, nw := report.OldRegime, report.NewRegime
	fmt.Fprintln(buf, "REGIME COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-26s %22s %22s\n", "", "Old Regime", "New Regime")
	row := func(label string, a, b decimal.Decimal) {
		fmt.Fprintf(buf, "%-26s %22s %22s\n", label, FormatCurrency(a), FormatCurrency(b))
	}
	row("Gross Income", old.GrossIncome, nw.GrossIncome)
	row("House Property Income", old.HousePropertyIncome, nw.HousePropertyIncome)
	row("Standard Deduction", old.StandardDeduction, nw.StandardDeduction)
	row("Total Deductions", old.TotalDeductions, nw.TotalDeductions)
	row("Taxable Income", old.TaxableIncome, nw.TaxableIncome)
	row("Tax on Regular Income", old.RegularIncomeTax, nw.RegularIncomeTax)
	row("Tax on Capital Gains", old.CapitalGainsTax, nw.CapitalGainsTax)
	row("Rebate u/s 87A", old.RebateAmount, nw.RebateAmount)
	row("Surcharge", old.Surcharge, nw.Surcharge)
	row("Cess", old.Cess, nw.Cess)
	row("Total Tax", old.TotalTax, nw.TotalTax)
	row("TDS + TCS", old.TDSDeducted.Add(old.TCSDeducted), nw.TDSDeducted.Add(nw.TCSDeducted))
	row("Net Tax Payable", old.NetTaxPayable, nw.NetTaxPayable)
	row("Advance Tax Required", old.AdvanceTaxRequired, nw.AdvanceTaxRequired)
	fmt.Fprintf(buf, "%-26s %22s %22s\n", "Effective Rate", FormatPercentage(old.EffectiveRate), FormatPercentage(nw.EffectiveRate))
	fmt.Fprintln(buf)
}

func writeRegimeDetail(buf *bytes.Buffer, r domain.TaxResult) {
	fmt.Fprintf(buf, "%s DETAIL\n", strings.ToUpper(RegimeLabel(r.Regime)))
	fmt.Fprintln(buf, strings.Repeat("-", 50))

	if len(r.SlabBreakdown) > 0 {
		fmt.Fprintln(buf, "Slab breakdown:")
		for _, f := range r.SlabBreakdown {
			fmt.Fprintf(buf, "  %-32s @ %6s  on %18s = %16s\n", bracketRange(f), FormatPercentage(f.Rate), FormatCurrency(f.IncomeInBracket), FormatCurrency(f.Tax))
		}
	}
	if len(r.CapitalGainsBreakdown) > 0 {
		fmt.Fprintln(buf, "Capital gains:")
		for _, g := range r.CapitalGainsBreakdown {
			term := "STCG"
			if g.IsLongTerm {
				term = "LTCG"
			}
			if g.SlabDeferred {
				fmt.Fprintf(buf, "  %-26s %s %16s taxed at slab rates\n", g.AssetName, term, FormatCurrency(g.Amount))
				continue
			}
			fmt.Fprintf(buf, "  %-26s %s %16s exempt %14s @ %6s = %14s\n", g.AssetName, term, FormatCurrency(g.Amount), FormatCurrency(g.Exempt), FormatPercentage(g.Rate), FormatCurrency(g.Tax))
		}
	}
	if len(r.LossesUtilized) > 0 {
		fmt.Fprintln(buf, "Carry-forward losses set off:")
		for _, l := range r.LossesUtilized {
			if l.IsZero() {
				continue
			}
			fmt.Fprintf(buf, "  AY %s: %s\n", l.AssessmentYear, FormatCurrency(l.Total()))
		}
	}
	if len(r.LossesRemaining) > 0 {
		fmt.Fprintln(buf, "Losses carried forward:")
		for _, l := range r.LossesRemaining {
			fmt.Fprintf(buf, "  AY %s: %s\n", l.AssessmentYear, FormatCurrency(l.Total()))
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(buf, "WARNING: %s\n", w)
	}
	fmt.Fprintln(buf)
}
