package config

import (
	"os"
	"strconv"

	"gopower/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Defaults DefaultsConfig
	Report   ReportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DefaultsConfig holds the fixed planning parameters used when a request
// does not override them.
type DefaultsConfig struct {
	Baseline float64
	MDE      float64
	Alpha    float64
	Power    float64
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Defaults: DefaultsConfig{
			Baseline: getEnvFloatOrDefault("DEFAULT_BASELINE", 0.5),
			MDE:      getEnvFloatOrDefault("DEFAULT_MDE", 0.05),
			Alpha:    getEnvFloatOrDefault("DEFAULT_ALPHA", 0.05),
			Power:    getEnvFloatOrDefault("DEFAULT_POWER", 0.8),
		},
		Report: ReportConfig{
			OutputDir: getEnvOrDefault("REPORT_DIR", "./reports"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"DEFAULT_BASELINE", config.Defaults.Baseline},
		{"DEFAULT_MDE", config.Defaults.MDE},
		{"DEFAULT_ALPHA", config.Defaults.Alpha},
		{"DEFAULT_POWER", config.Defaults.Power},
	} {
		if p.value <= 0 || p.value >= 1 {
			return errors.ConfigInvalid(p.name + " must lie strictly in (0,1)")
		}
	}
	if config.Report.OutputDir == "" {
		return errors.ConfigInvalid("report output directory is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
