package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// MarkdownFormatter renders the report as GitHub flavoured markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	var buf bytes.Buffer
	old, nw := report.OldRegime, report.NewRegime

	title := "Income Tax Computation"
	if report.TaxpayerName != "" {
		title += ": " + escapeMarkdown(report.TaxpayerName)
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "Assessment year **%s**, age %d. Report `%s` generated %s.\n\n",
		report.AssessmentYear, report.Age, report.ID, report.GeneratedAt.Format("02 Jan 2006 15:04 MST"))

	rec := AnalyzeReport(report)
	fmt.Fprintf(&buf, "## Recommendation\n\n%s\n\n", rec.Explanation)

	fmt.Fprintln(&buf, "## Regime comparison")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| | Old Regime | New Regime |")
	fmt.Fprintln(&buf, "|---|---:|---:|")
	row := func(label string, a, b decimal.Decimal) {
		fmt.Fprintf(&buf, "| %s | %s | %s |\n", label, FormatCurrency(a), FormatCurrency(b))
	}
	row("Gross income", old.GrossIncome, nw.GrossIncome)
	row("Standard deduction", old.StandardDeduction, nw.StandardDeduction)
	row("Total deductions", old.TotalDeductions, nw.TotalDeductions)
	row("Taxable income", old.TaxableIncome, nw.TaxableIncome)
	row("Tax before rebate", old.TaxBeforeRebate, nw.TaxBeforeRebate)
	row("Rebate u/s 87A", old.RebateAmount, nw.RebateAmount)
	row("Surcharge", old.Surcharge, nw.Surcharge)
	row("Cess", old.Cess, nw.Cess)
	row("**Total tax**", old.TotalTax, nw.TotalTax)
	row("Net tax payable", old.NetTaxPayable, nw.NetTaxPayable)
	row("Advance tax required", old.AdvanceTaxRequired, nw.AdvanceTaxRequired)
	fmt.Fprintf(&buf, "| Effective rate | %s | %s |\n\n", FormatPercentage(old.EffectiveRate), FormatPercentage(nw.EffectiveRate))

	for _, r := range []domain.TaxResult{old, nw} {
		writeMarkdownRegime(&buf, r)
	}

	fmt.Fprintln(&buf, "## Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeMarkdownRegime(buf *bytes.Buffer, r domain.TaxResult) {
	fmt.Fprintf(buf, "## %s\n\n", RegimeLabel(r.Regime))
	if len(r.SlabBreakdown) > 0 {
		fmt.Fprintln(buf, "| Slab | Rate | Income in slab | Tax |")
		fmt.Fprintln(buf, "|---|---:|---:|---:|")
		for _, f := range r.SlabBreakdown {
			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", bracketRange(f), FormatPercentage(f.Rate), FormatCurrency(f.IncomeInBracket), FormatCurrency(f.Tax))
		}
		fmt.Fprintln(buf)
	}
	if len(r.CapitalGainsBreakdown) > 0 {
		fmt.Fprintln(buf, "| Asset | Term | Gain | Exempt | Rate | Tax |")
		fmt.Fprintln(buf, "|---|---|---:|---:|---:|---:|")
		for _, g := range r.CapitalGainsBreakdown {
			term := "Short term"
			if g.IsLongTerm {
				term = "Long term"
			}
			rate := FormatPercentage(g.Rate)
			if g.SlabDeferred {
				rate = "slab"
			}
			fmt.Fprintf(buf, "| %s | %s | %s | %s | %s | %s |\n", escapeMarkdown(g.AssetName), term, FormatCurrency(g.Amount), FormatCurrency(g.Exempt), rate, FormatCurrency(g.Tax))
		}
		fmt.Fprintln(buf)
	}
	if len(r.LossesRemaining) > 0 {
		fmt.Fprintln(buf, "Losses carried forward:")
		fmt.Fprintln(buf)
		for _, l := range r.LossesRemaining {
			fmt.Fprintf(buf, "- AY %s: %s\n", l.AssessmentYear, FormatCurrency(l.Total()))
		}
		fmt.Fprintln(buf)
	}
	if len(r.Warnings) > 0 {
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "> **Warning:** %s\n", escapeMarkdown(w))
		}
		fmt.Fprintln(buf)
	}
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;")

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
