package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds process settings for the CLI and HTTP server
type AppConfig struct {
	Port      int
	LogLevel  string
	LogFormat string
	RulesFile string
	GinMode   string
}

// LoadAppConfig reads settings from the environment. Variables already set in
// the environment win over values in the optional .env files.
func LoadAppConfig(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		// a missing .env is normal outside development
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	port, err := strconv.Atoi(getEnv("ITR_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("ITR_PORT must be a valid port number, got %q", os.Getenv("ITR_PORT"))
	}

	return &AppConfig{
		Port:      port,
		LogLevel:  getEnv("ITR_LOG_LEVEL", "info"),
		LogFormat: getEnv("ITR_LOG_FORMAT", "text"),
		RulesFile: getEnv("ITR_RULES_FILE", ""),
		GinMode:   getEnv("GIN_MODE", "release"),
	}, nil
}

// Addr is the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
