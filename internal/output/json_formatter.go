package output

import (
	"encoding/json"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// JSONFormatter serializes the computation report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
