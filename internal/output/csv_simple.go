package output

import (
	"bytes"
	"encoding/csv"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ComputationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "Recommended", "GrossIncome", "StandardDeduction", "TotalDeductions", "TaxableIncome", "TaxBeforeRebate", "Rebate", "Surcharge", "Cess", "TotalTax", "CapitalGainsTax", "TDS", "TCS", "NetTaxPayable", "AdvanceTax", "EffectiveRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range []domain.TaxResult{report.OldRegime, report.NewRegime} {
		row := []string{
			string(r.Regime),
			boolToString(r.Regime == report.Comparison.RecommendedRegime),
			r.GrossIncome.StringFixed(2),
			r.StandardDeduction.StringFixed(2),
			r.TotalDeductions.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.TaxBeforeRebate.StringFixed(2),
			r.RebateAmount.StringFixed(2),
			r.Surcharge.StringFixed(2),
			r.Cess.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.CapitalGainsTax.StringFixed(2),
			r.TDSDeducted.StringFixed(2),
			r.TCSDeducted.StringFixed(2),
			r.NetTaxPayable.StringFixed(2),
			r.AdvanceTaxRequired.StringFixed(2),
			r.EffectiveRate.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
