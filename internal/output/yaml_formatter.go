package output

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the computation report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	return yaml.Marshal(report)
}
