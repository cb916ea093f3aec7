package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sheetfolio/internal/cli"
	"sheetfolio/internal/config"
	applog "sheetfolio/internal/log"
	ports "sheetfolio/internal/sheets"
	"sheetfolio/internal/services"
)

type options struct {
	source      string
	format      string
	strictOrder bool
}

// app is the wiring shared by every subcommand for one invocation.
type app struct {
	cfg    *config.Config
	logger *applog.Logger
	reader ports.GridReader
	loader *services.LoadService
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sheetfolio",
		Short: "Parse portfolio and financial planning spreadsheets",
		Long: `sheetfolio reads a portfolio sheet and a financial planning sheet from
Google Sheets, an XLSX workbook or a directory of CSV files, and prints
holdings, dated records, monthly aggregates or a summary report.

Configuration comes from the environment (and a local .env file):
  DATA_SOURCE              google | xlsx | memory (default memory)
  GOOGLE_SPREADSHEET_ID    shared spreadsheet for both sheets
  PORTFOLIO_RANGE          default Portfolio!A1:H
  FINANCIAL_RANGE          default Financial!A1:ZZ
  AMQP_URL                 publish reports when set`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatJSON, formatYAML, formatText:
				return nil
			default:
				return fmt.Errorf("invalid format %q: must be %s, %s or %s", opts.format, formatJSON, formatYAML, formatText)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.source, "source", "", "data source: google, xlsx or memory (overrides DATA_SOURCE)")
	root.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "output format: json, yaml or text (summary only)")
	root.PersistentFlags().BoolVar(&opts.strictOrder, "strict-order", false, "fail when financial rows are not in chronological order")

	root.AddCommand(
		newPortfolioCmd(opts),
		newRecordsCmd(opts),
		newMonthlyCmd(opts),
		newSummaryCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// run wires configuration, logging and the data source, then calls fn with
// a context cancelled on SIGINT/SIGTERM.
func run(cmd *cobra.Command, opts *options, fn func(ctx context.Context, a *app) error) error {
	cfg, err := cli.LoadAndValidateConfig(opts.source)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()
	ctx = applog.WithLogger(ctx, logger)

	reader, closer, err := cli.OpenReader(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open data source", applog.FieldSource, cfg.DataSource, applog.FieldError, err)
		return err
	}
	defer closer.Close()

	a := &app{
		cfg:    cfg,
		logger: logger,
		reader: reader,
		loader: services.NewLoadService(reader,
			services.Source{SpreadsheetID: cfg.PortfolioSpreadsheetID, Range: cfg.PortfolioRange},
			services.Source{SpreadsheetID: cfg.FinancialSpreadsheetID, Range: cfg.FinancialRange},
		),
	}
	return fn(ctx, a)
}

// load runs one loader call bounded by FETCH_TIMEOUT and applies
// --strict-order to the result.
func (a *app) load(ctx context.Context, opts *options, fn func(context.Context) (*services.Snapshot, error)) (*services.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	snap, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "Snapshot loaded",
		applog.FieldWarnings, snap.Warnings.Len(),
		applog.FieldDuration, time.Since(start).Milliseconds())

	if opts.strictOrder {
		if err := snap.CheckOrder(); err != nil {
			return nil, err
		}
	}
	return snap, nil
}
