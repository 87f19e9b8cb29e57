package output

import (
	"bytes"
	"encoding/csv"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// CSVDetailedExporter writes one row per slab fill and capital gain entry for both regimes.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ComputationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "Section", "Item", "Min", "Max", "Rate", "Amount", "Exempt", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range []domain.TaxResult{report.OldRegime, report.NewRegime} {
		regime := string(r.Regime)
		for i, f := range r.SlabBreakdown {
			row := []string{regime, "slab", intToString(i + 1), f.Min.StringFixed(2), f.Max.StringFixed(2), f.Rate.String(), f.IncomeInBracket.StringFixed(2), "", f.Tax.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		for _, g := range r.CapitalGainsBreakdown {
			section := "stcg"
			if g.IsLongTerm {
				section = "ltcg"
			}
			row := []string{regime, section, g.AssetType, "", "", g.Rate.String(), g.Amount.StringFixed(2), g.Exempt.StringFixed(2), g.Tax.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		totals := [][]string{
			{regime, "total", "surcharge", "", "", "", "", "", r.Surcharge.StringFixed(2)},
			{regime, "total", "cess", "", "", "", "", "", r.Cess.StringFixed(2)},
			{regime, "total", "total_tax", "", "", "", "", "", r.TotalTax.StringFixed(2)},
		}
		if err := w.WriteAll(totals); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
