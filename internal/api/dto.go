package api

import (
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CompareRequest carries two previously computed regime results
type CompareRequest struct {
	OldRegime domain.TaxResult `json:"old_regime"`
	NewRegime domain.TaxResult `json:"new_regime"`
}

// CapitalGainsRequest is a list of gains to classify
type CapitalGainsRequest struct {
	Gains []domain.CapitalGain `json:"gains"`
}

// AmountResponse wraps a single computed amount
type AmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// HousePropertyResponse is the net income from house property
type HousePropertyResponse struct {
	Income decimal.Decimal `json:"income"`
}

// AssetTypesResponse lists the configured asset classes
type AssetTypesResponse struct {
	AssessmentYear string             `json:"assessment_year"`
	AssetTypes     []domain.AssetType `json:"asset_types"`
}
