package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itrdesk/tax-engine/internal/calculation"
	"github.com/itrdesk/tax-engine/internal/config"
	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/sirupsen/logrus"
)

// Server exposes the tax engine over HTTP
type Server struct {
	engine *calculation.Engine
	parser *config.InputParser
	logger *logrus.Logger
}

// NewServer wires the handlers to an engine. A nil parser validates against the
// engine's rules.
func NewServer(engine *calculation.Engine, parser *config.InputParser, logger *logrus.Logger) *Server {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if parser == nil {
		parser = config.NewInputParserWithRules(engine.Calculator.Rules)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{engine: engine, parser: parser, logger: logger}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))

	router.GET("/health", s.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/asset-types", s.AssetTypes)

		tax := api.Group("/tax")
		{
			tax.POST("/compute", s.ComputeTax)
			tax.POST("/compare", s.CompareRegimes)
		}

		api.POST("/house-property", s.HouseProperty)
		api.POST("/capital-gains", s.CapitalGains)

		deductions := api.Group("/deductions")
		{
			deductions.POST("/hra", s.HRA)
			deductions.POST("/80c", s.Section80C)
			deductions.POST("/80d", s.Section80D)
			deductions.POST("/gratuity", s.Gratuity)
		}
	}
	return router
}

// sendError sends a structured error response
func (s *Server) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// statusFor maps engine and validation errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidProfile), errors.Is(err, domain.ErrUnknownAssetType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
