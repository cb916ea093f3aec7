// Package cli provides process bootstrap helpers for cmd/sheetfolio: logger
// setup, .env loading, configuration, data source wiring and signal handling.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"sheetfolio/internal/amqp"
	"sheetfolio/internal/cache"
	"sheetfolio/internal/config"
	applog "sheetfolio/internal/log"
	ports "sheetfolio/internal/sheets"
	"sheetfolio/internal/sheets/google"
	"sheetfolio/internal/sheets/memory"
	"sheetfolio/internal/sheets/xlsx"
)

// SetupLogger initializes structured logging on stderr at the given level,
// and sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(level),
		Component: applog.ComponentCLI,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it. A non-empty source overrides DATA_SOURCE.
func LoadAndValidateConfig(source string) (*config.Config, error) {
	cfg := config.Load()
	if source != "" {
		cfg.DataSource = strings.ToLower(source)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenReader builds the GridReader for cfg.DataSource. Google reads go
// through an LRU grid cache whose expired entries are swept every CacheTTL.
// The returned closer releases the source.
func OpenReader(ctx context.Context, cfg *config.Config, logger *applog.Logger) (ports.GridReader, io.Closer, error) {
	logger = logger.WithComponent(applog.ComponentSheets)

	switch cfg.DataSource {
	case config.SourceGoogle:
		client, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		reader := cache.NewCachedReader(client, cfg.CacheSize, cfg.CacheTTL)
		manager := cache.NewManager(logger.Logger.With(applog.FieldComponent, applog.ComponentCache))
		manager.Register(reader.Cache())
		if cfg.CacheTTL > 0 {
			manager.StartCleanup(cfg.CacheTTL)
		}
		logger.Info("Google Sheets source ready",
			applog.FieldSource, cfg.DataSource,
			"portfolio_spreadsheet_id", cfg.PortfolioSpreadsheetID,
			"financial_spreadsheet_id", cfg.FinancialSpreadsheetID,
			"cache_ttl", cfg.CacheTTL.String())
		return reader, closerFunc(func() error { manager.Stop(); return nil }), nil

	case config.SourceXLSX:
		wb, err := xlsx.Open(cfg.XLSXPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("XLSX source ready", applog.FieldSource, cfg.DataSource, "path", cfg.XLSXPath, "sheets", wb.SheetNames())
		return wb, wb, nil

	case config.SourceMemory:
		store, err := memory.NewFromDir(cfg.MemoryDataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Memory source ready", applog.FieldSource, cfg.DataSource, "dir", cfg.MemoryDataDir, "sheets", store.Sheets())
		return store, closerFunc(func() error { return nil }), nil
	}
	return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
}

// NewPublisher connects the report publisher when AMQP_URL is configured.
// It returns a nil client when publishing is disabled.
func NewPublisher(cfg *config.Config, logger *applog.Logger) (*amqp.Client, error) {
	if !cfg.PublishEnabled() {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
		return nil, nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		return nil, fmt.Errorf("initialize AMQP client: %w", err)
	}
	logger.Info("AMQP publisher connected",
		"exchange", cfg.AMQPExchange,
		"routing_key", cfg.AMQPRoutingKey)
	return client, nil
}
