package config

import (
	"fmt"
	"os"

	"invoicer/internal/logger"
)

type Config struct {
	// Invoice template and output locations
	TemplatePath string
	OutputDir    string

	// Ledger file (flat CSV table of all invoices)
	LedgerPath string

	// HTTP listen address for `invoicer serve`
	ServeAddr string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		TemplatePath:  getEnv("INVOICE_TEMPLATE_PATH", "template.xlsx"),
		OutputDir:     getEnv("INVOICE_OUTPUT_DIR", "."),
		LedgerPath:    getEnv("INVOICE_LEDGER_PATH", "invoice_booking.csv"),
		ServeAddr:     getEnv("SERVE_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.TemplatePath == "" {
		return fmt.Errorf("INVOICE_TEMPLATE_PATH must not be empty")
	}
	if c.LedgerPath == "" {
		return fmt.Errorf("INVOICE_LEDGER_PATH must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("INVOICE_OUTPUT_DIR must not be empty")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
