package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Data sources accepted by DATA_SOURCE.
const (
	SourceGoogle = "google"
	SourceXLSX   = "xlsx"
	SourceMemory = "memory"
)

var validSources = []string{SourceGoogle, SourceXLSX, SourceMemory}

type Config struct {
	// Data source selection
	DataSource string

	// Google Sheets
	GoogleSpreadsheetID    string
	PortfolioSpreadsheetID string
	FinancialSpreadsheetID string

	// Ranges, in A1 notation
	PortfolioRange string
	FinancialRange string

	// Local sources
	XLSXPath      string
	MemoryDataDir string

	// Grid cache
	CacheTTL  time.Duration
	CacheSize int

	// AMQP report publishing, disabled when AMQPURL is empty
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	LogLevel     string
	FetchTimeout time.Duration
}

func Load() *Config {
	googleID := getEnv("GOOGLE_SPREADSHEET_ID", "")
	cfg := &Config{
		DataSource: strings.ToLower(getEnv("DATA_SOURCE", SourceMemory)),

		GoogleSpreadsheetID:    googleID,
		PortfolioSpreadsheetID: getEnv("PORTFOLIO_SPREADSHEET_ID", googleID),
		FinancialSpreadsheetID: getEnv("FINANCIAL_SPREADSHEET_ID", googleID),

		PortfolioRange: getEnv("PORTFOLIO_RANGE", "Portfolio!A1:H"),
		FinancialRange: getEnv("FINANCIAL_RANGE", "Financial!A1:ZZ"),

		XLSXPath:      getEnv("XLSX_PATH", ""),
		MemoryDataDir: getEnv("MEMORY_DATA_DIR", "data"),

		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheSize: getEnvInt("CACHE_SIZE", 32),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "sheetfolio"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "reports"),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
	}

	return cfg
}

// PublishEnabled reports whether generated reports go to AMQP.
func (c *Config) PublishEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidSource := false
	for _, source := range validSources {
		if c.DataSource == source {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid data source '%s': must be one of %v", c.DataSource, validSources))
	}

	switch c.DataSource {
	case SourceGoogle:
		if c.PortfolioSpreadsheetID == "" {
			errors = append(errors, "portfolio spreadsheet ID is required when using google source (set PORTFOLIO_SPREADSHEET_ID or GOOGLE_SPREADSHEET_ID)")
		}
		if c.FinancialSpreadsheetID == "" {
			errors = append(errors, "financial spreadsheet ID is required when using google source (set FINANCIAL_SPREADSHEET_ID or GOOGLE_SPREADSHEET_ID)")
		}
	case SourceXLSX:
		if c.XLSXPath == "" {
			errors = append(errors, "XLSX path is required when using xlsx source")
		} else if _, err := os.Stat(c.XLSXPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("XLSX workbook does not exist: %s", c.XLSXPath))
		}
	case SourceMemory:
		if c.MemoryDataDir == "" {
			errors = append(errors, "memory data directory cannot be empty when using memory source")
		}
	}

	if strings.TrimSpace(c.PortfolioRange) == "" {
		errors = append(errors, "portfolio range cannot be empty")
	}
	if strings.TrimSpace(c.FinancialRange) == "" {
		errors = append(errors, "financial range cannot be empty")
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}

	if c.FetchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at most 10 minutes", c.FetchTimeout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
