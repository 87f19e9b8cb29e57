package output

import (
	"bytes"
	"fmt"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INCOME TAX SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.TaxpayerName != "" {
		fmt.Fprintf(&buf, "Taxpayer: %s\n", report.TaxpayerName)
	}
	fmt.Fprintf(&buf, "Assessment Year: %s\n", report.AssessmentYear)
	fmt.Fprintln(&buf)
	for _, r := range []domain.TaxResult{report.OldRegime, report.NewRegime} {
		fmt.Fprintf(&buf, "%s: Taxable=%s TotalTax=%s NetPayable=%s Effective=%s\n",
			RegimeLabel(r.Regime),
			FormatCurrency(r.TaxableIncome),
			FormatCurrency(r.TotalTax),
			FormatCurrency(r.NetTaxPayable),
			FormatPercentage(r.EffectiveRate),
		)
	}
	rec := AnalyzeReport(report)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Recommended: %s (saves %s / %s)\n", RegimeLabel(rec.Regime), FormatCurrency(rec.Savings), FormatPercentage(rec.Percentage))
	return buf.Bytes(), nil
}
