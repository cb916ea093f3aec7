package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"sheetfolio/internal/cli"
	applog "sheetfolio/internal/log"
	"sheetfolio/internal/services"
)

func newPortfolioCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Print portfolio holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				snap, err := a.load(ctx, opts, a.loader.LoadPortfolio)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.format, snap.Portfolio)
			})
		},
	}
}

func newRecordsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print dated financial records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				snap, err := a.load(ctx, opts, a.loader.LoadFinancial)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.format, snap.Records)
			})
		},
	}
}

func newMonthlyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Print financial records aggregated by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				snap, err := a.load(ctx, opts, a.loader.LoadFinancial)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.format, snap.Monthly)
			})
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print portfolio allocation, net worth and monthly expense figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				snap, err := a.load(ctx, opts, a.loader.Load)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.format, services.Summarize(snap))
			})
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a report from both sheets and publish it when AMQP is configured",
		Long: `report loads the portfolio and financial sheets, prints the report and,
when AMQP_URL is set, publishes it to the configured exchange.

With --interval the report is rebuilt and republished on every tick until
the process is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				client, err := cli.NewPublisher(a.cfg, a.logger)
				if err != nil {
					return err
				}
				var publisher services.ReportPublisher
				if client != nil {
					defer client.Close()
					publisher = client
				}
				reports := services.NewReportService(publisher)

				once := func() error {
					snap, err := a.load(ctx, opts, a.loader.Load)
					if err != nil {
						return err
					}
					report, err := reports.Publish(ctx, snap)
					if werr := writeOutput(cmd.OutOrStdout(), opts.format, report); werr != nil {
						return werr
					}
					return err
				}

				if interval <= 0 {
					return once()
				}
				return every(ctx, a.logger, interval, once)
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "rebuild and republish the report at this interval")
	return cmd
}

// every calls fn immediately and then on each tick until ctx is done.
// Failures are logged and do not stop the loop.
func every(ctx context.Context, logger *applog.Logger, interval time.Duration, fn func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := fn(); err != nil {
			logger.ErrorContext(ctx, "Report run failed", applog.FieldError, err)
		}
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "Stopping report loop", applog.FieldOperation, applog.OpShutdown)
			return nil
		case <-ticker.C:
		}
	}
}
