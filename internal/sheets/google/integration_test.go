//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"

	"sheetfolio/internal/aggregate"
	"sheetfolio/internal/parser"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_ReadAndParse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	portfolioID := os.Getenv("PORTFOLIO_SPREADSHEET_ID")
	financialID := os.Getenv("FINANCIAL_SPREADSHEET_ID")
	if portfolioID == "" && financialID == "" {
		t.Skip("PORTFOLIO_SPREADSHEET_ID / FINANCIAL_SPREADSHEET_ID not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewFromEnv(ctx)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	t.Run("Portfolio", func(t *testing.T) {
		if portfolioID == "" {
			t.Skip("PORTFOLIO_SPREADSHEET_ID not set")
		}
		rng := os.Getenv("PORTFOLIO_RANGE")
		if rng == "" {
			rng = "Portfolio!A1:H"
		}
		grid, err := client.ReadGrid(ctx, portfolioID, rng)
		if err != nil {
			t.Fatalf("Failed to read portfolio: %v", err)
		}
		items, diags := parser.ParsePortfolioWithDiagnostics(grid)
		t.Logf("Parsed %d holdings from %d rows (%d warnings)", len(items), len(grid), diags.Len())
		for _, it := range items {
			if it.Name == "" || it.ValueCAD <= 0 {
				t.Errorf("holding violates filter: %+v", it)
			}
		}
	})

	t.Run("Financial", func(t *testing.T) {
		if financialID == "" {
			t.Skip("FINANCIAL_SPREADSHEET_ID not set")
		}
		rng := os.Getenv("FINANCIAL_RANGE")
		if rng == "" {
			rng = "Financial!A1:ZZ"
		}
		grid, err := client.ReadGrid(ctx, financialID, rng)
		if err != nil {
			t.Fatalf("Failed to read financial sheet: %v", err)
		}
		records := parser.ParseFinancial(grid)
		months := aggregate.Monthly(records)
		t.Logf("Parsed %d records into %d months", len(records), len(months))
		if len(months) > len(records) {
			t.Errorf("more months than records")
		}
		for _, w := range aggregate.CheckChronological(records) {
			t.Logf("order warning: %s", w)
		}
	})
}
