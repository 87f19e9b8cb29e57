package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itrdesk/tax-engine/internal/calculation"
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/internal/output"
)

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "ITR Tax Engine",
		"assessment_year": s.engine.Calculator.Rules.AssessmentYear,
	})
}

// AssetTypes lists the asset classes known to the rules
func (s *Server) AssetTypes(c *gin.Context) {
	rules := s.engine.Calculator.Rules
	c.JSON(http.StatusOK, AssetTypesResponse{
		AssessmentYear: rules.AssessmentYear,
		AssetTypes:     rules.AssetTypes,
	})
}

// ComputeTax handles POST /tax/compute. The optional format query parameter
// renders the report with a registered formatter instead of JSON.
func (s *Server) ComputeTax(c *gin.Context) {
	var profile domain.TaxpayerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid taxpayer profile", err)
		return
	}
	if err := s.parser.ValidateProfile(&profile); err != nil {
		s.sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", "Profile validation failed", err)
		return
	}

	report, err := s.engine.Compute(c.Request.Context(), &profile)
	if err != nil {
		s.sendError(c, statusFor(err), "COMPUTATION_FAILED", "Failed to compute tax", err)
		return
	}
	report.Assumptions = output.GenerateAssumptions(s.engine.Calculator.Rules)

	format := c.Query("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		c.JSON(http.StatusOK, report)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		s.sendError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Unsupported output format "+format, nil)
		return
	}
	data, err := f.Format(report)
	if err != nil {
		s.sendError(c, http.StatusInternalServerError, "FORMAT_FAILED", "Failed to render report", err)
		return
	}
	c.Data(http.StatusOK, contentType(f.Name()), data)
}

// CompareRegimes handles POST /tax/compare
func (s *Server) CompareRegimes(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid comparison request", err)
		return
	}
	c.JSON(http.StatusOK, calculation.GetOptimalRegime(req.OldRegime, req.NewRegime))
}

// HouseProperty handles POST /house-property
func (s *Server) HouseProperty(c *gin.Context) {
	var data domain.HousePropertyData
	if err := c.ShouldBindJSON(&data); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid house property data", err)
		return
	}
	c.JSON(http.StatusOK, HousePropertyResponse{Income: s.engine.Calculator.HousePropertyIncome(&data)})
}

// CapitalGains handles POST /capital-gains. Holding periods are derived from
// purchase and sale dates when both are present.
func (s *Server) CapitalGains(c *gin.Context) {
	var req CapitalGainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid capital gains request", err)
		return
	}
	tc := s.engine.Calculator
	c.JSON(http.StatusOK, tc.ClassifyCapitalGains(tc.NormalizeCapitalGains(req.Gains)))
}

// HRA handles POST /deductions/hra
func (s *Server) HRA(c *gin.Context) {
	var in calculation.HRAInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid HRA request", err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Amount: calculation.CalculateHRAExemption(in)})
}

// Section80C handles POST /deductions/80c
func (s *Server) Section80C(c *gin.Context) {
	var in calculation.Section80CInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid 80C request", err)
		return
	}
	c.JSON(http.StatusOK, s.engine.Calculator.Deductions.Section80C(in))
}

// Section80D handles POST /deductions/80d
func (s *Server) Section80D(c *gin.Context) {
	var in calculation.Section80DInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid 80D request", err)
		return
	}
	c.JSON(http.StatusOK, s.engine.Calculator.Deductions.Section80D(in))
}

// Gratuity handles POST /deductions/gratuity
func (s *Server) Gratuity(c *gin.Context) {
	var in calculation.GratuityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid gratuity request", err)
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Amount: s.engine.Calculator.Deductions.GratuityExemption(in)})
}

func contentType(formatter string) string {
	switch formatter {
	case "html":
		return "text/html; charset=utf-8"
	case "csv", "detailed-csv":
		return "text/csv; charset=utf-8"
	case "yaml":
		return "application/yaml; charset=utf-8"
	case "markdown":
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}
