package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"sheetfolio/internal/aggregate"
	"sheetfolio/internal/core"
	applog "sheetfolio/internal/log"
	"sheetfolio/internal/parser"
	ports "sheetfolio/internal/sheets"
)

// ErrOutOfOrder is returned by Snapshot.CheckOrder when financial rows are
// not chronological.
var ErrOutOfOrder = errors.New("financial records are not in chronological order")

// Source locates one sheet: a spreadsheet and an A1 range inside it.
type Source struct {
	SpreadsheetID string
	Range         string
}

func (s Source) String() string {
	if s.SpreadsheetID == "" {
		return s.Range
	}
	return s.SpreadsheetID + "/" + s.Range
}

// Snapshot is everything derived from one read of both sheets.
type Snapshot struct {
	Portfolio []core.PortfolioItem    `json:"portfolio" yaml:"portfolio"`
	Records   []core.FinancialRecord  `json:"records" yaml:"records"`
	Monthly   []core.AggregatedRecord `json:"monthly" yaml:"monthly"`
	Warnings  core.Diagnostics        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CheckOrder returns ErrOutOfOrder when any financial record is dated before
// its predecessor.
func (s *Snapshot) CheckOrder() error {
	if n := s.Warnings.ByKind(core.OutOfOrder).Len(); n > 0 {
		return fmt.Errorf("%w: %d record(s) out of order", ErrOutOfOrder, n)
	}
	return nil
}

// LoadService reads the portfolio and financial sheets and runs them
// through the parsers and the monthly aggregator.
type LoadService struct {
	reader    ports.GridReader
	portfolio Source
	financial Source
}

func NewLoadService(reader ports.GridReader, portfolio, financial Source) *LoadService {
	return &LoadService{
		reader:    reader,
		portfolio: portfolio,
		financial: financial,
	}
}

// Load fetches both sheets concurrently and parses them once both arrive.
func (s *LoadService) Load(ctx context.Context) (*Snapshot, error) {
	var portfolioGrid, financialGrid core.Grid

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grid, err := s.fetch(gctx, s.portfolio)
		portfolioGrid = grid
		return err
	})
	g.Go(func() error {
		grid, err := s.fetch(gctx, s.financial)
		financialGrid = grid
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	snap.Portfolio, snap.Warnings = s.parsePortfolio(ctx, portfolioGrid)
	var diags core.Diagnostics
	snap.Records, snap.Monthly, diags = s.parseFinancial(ctx, financialGrid)
	snap.Warnings = append(snap.Warnings, diags...)
	return snap, nil
}

// LoadPortfolio reads and parses only the portfolio sheet.
func (s *LoadService) LoadPortfolio(ctx context.Context) (*Snapshot, error) {
	grid, err := s.fetch(ctx, s.portfolio)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	snap.Portfolio, snap.Warnings = s.parsePortfolio(ctx, grid)
	return snap, nil
}

// LoadFinancial reads only the financial sheet and derives daily records
// and monthly aggregates from it.
func (s *LoadService) LoadFinancial(ctx context.Context) (*Snapshot, error) {
	grid, err := s.fetch(ctx, s.financial)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	snap.Records, snap.Monthly, snap.Warnings = s.parseFinancial(ctx, grid)
	return snap, nil
}

func (s *LoadService) fetch(ctx context.Context, src Source) (core.Grid, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentLoader)
	start := time.Now()

	grid, err := s.reader.ReadGrid(ctx, src.SpreadsheetID, src.Range)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read sheet",
			applog.NewFields().WithOperation(applog.OpFetch).WithRange(src.SpreadsheetID, src.Range).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	logger.DebugContext(ctx, "Read sheet",
		applog.FieldOperation, applog.OpFetch,
		applog.FieldRange, src.Range,
		applog.FieldRows, len(grid),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return grid, nil
}

func (s *LoadService) parsePortfolio(ctx context.Context, grid core.Grid) ([]core.PortfolioItem, core.Diagnostics) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentParser)

	items, diags := parser.ParsePortfolioWithDiagnostics(grid)
	logWarnings(ctx, logger, s.portfolio, diags)
	logger.InfoContext(ctx, "Parsed portfolio",
		applog.FieldOperation, applog.OpParse,
		applog.FieldItems, len(items),
		applog.FieldWarnings, diags.Len())
	return items, diags
}

func (s *LoadService) parseFinancial(ctx context.Context, grid core.Grid) ([]core.FinancialRecord, []core.AggregatedRecord, core.Diagnostics) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentParser)

	records, diags := parser.ParseFinancialWithDiagnostics(grid)
	monthly, monthDiags := aggregate.MonthlyWithDiagnostics(records)
	diags = append(diags, monthDiags...)
	diags = append(diags, aggregate.CheckChronological(records)...)

	logWarnings(ctx, logger, s.financial, diags)
	logger.InfoContext(ctx, "Parsed financial records",
		applog.FieldOperation, applog.OpAggregate,
		applog.FieldRecords, len(records),
		applog.FieldMonths, len(monthly),
		applog.FieldWarnings, diags.Len())
	return records, monthly, diags
}

func logWarnings(ctx context.Context, logger *applog.Logger, src Source, diags core.Diagnostics) {
	for _, w := range diags {
		fields := applog.NewFields().WithWarning(w)
		fields[applog.FieldRange] = src.Range
		logger.WarnContext(ctx, w.Message, fields.ToSlice()...)
	}
}
