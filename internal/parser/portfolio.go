package parser

import (
	"strings"

	"sheetfolio/internal/core"
)

// Portfolio sheet columns, in sheet order.
const (
	colName = iota
	colInvestment
	colCategory
	colAmount
	colPrice
	colCurrency
	colValueCAD
	colPercent
)

// ParsePortfolio maps a flat portfolio grid to holdings. Row 0 is the header.
// Rows without a name or with a non-positive CAD value are dropped; blank
// separator rows are expected and removed this way.
func ParsePortfolio(grid core.Grid) []core.PortfolioItem {
	items, _ := ParsePortfolioWithDiagnostics(grid)
	return items
}

// ParsePortfolioWithDiagnostics is ParsePortfolio plus the list of rows that
// were dropped or held malformed numbers.
func ParsePortfolioWithDiagnostics(grid core.Grid) ([]core.PortfolioItem, core.Diagnostics) {
	var (
		items []core.PortfolioItem
		diags core.Diagnostics
	)
	for r := 1; r < len(grid); r++ {
		amount := parseCell(grid, r, colAmount, &diags)
		price := parseCell(grid, r, colPrice, &diags)
		value := parseCell(grid, r, colValueCAD, &diags)
		if _, ok := core.TryParseAmount(grid.Cell(r, colPercent)); !ok {
			diags.Add(malformed(r, colPercent, grid.Cell(r, colPercent)))
		}

		item := core.PortfolioItem{
			Name:       grid.Cell(r, colName),
			Investment: grid.Cell(r, colInvestment),
			Category:   grid.Cell(r, colCategory),
			Amount:     amount,
			Price:      price,
			Currency:   grid.Cell(r, colCurrency),
			ValueCAD:   value,
			Percent:    core.ParsePercent(grid.Cell(r, colPercent)),
		}
		if item.Name == "" || item.ValueCAD <= 0 {
			if !isBlankRow(grid[r]) {
				diags.Add(core.Warning{Row: r, Col: -1, Kind: core.DroppedRow, Value: item.Name,
					Message: "holding without name or positive CAD value"})
			}
			continue
		}
		items = append(items, item)
	}
	return items, diags
}

func parseCell(grid core.Grid, r, c int, diags *core.Diagnostics) float64 {
	cell := grid.Cell(r, c)
	v, ok := core.TryParseAmount(cell)
	if !ok {
		diags.Add(malformed(r, c, cell))
	}
	return v
}

func malformed(r, c int, cell string) core.Warning {
	return core.Warning{Row: r, Col: c, Kind: core.MalformedNumber, Value: cell,
		Message: "not a number, read as 0"}
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
