// Package parser converts raw sheet grids into typed finance data.
//
// Two layouts are supported. The portfolio sheet is flat: one header row and
// one holding per row. The financial planning sheet has a three-row header
// (category, sub-category, metric) whose merged cells come back from the
// Sheets API as one value followed by blanks, and one dated row per entry.
package parser

import "sheetfolio/internal/core"

// HeaderRows is the number of header rows of the financial planning sheet.
const HeaderRows = 3

// headerFold is the state carried across columns while resolving headers.
type headerFold struct {
	category    string
	subCategory string
}

func (f headerFold) next(category, subCategory, metric string) (headerFold, core.ColumnDescriptor) {
	if category != "" {
		f.category = category
	}
	if subCategory != "" {
		f.subCategory = subCategory
	}
	return f, core.ColumnDescriptor{
		Category:    f.category,
		SubCategory: f.subCategory,
		Metric:      metric,
	}
}

// ResolveHeaders returns one descriptor per column, spanning the widest of
// the first three rows. Category and sub-category forward-fill across blank
// cells independently of each other; the metric is taken from its own
// column only.
func ResolveHeaders(grid core.Grid) []core.ColumnDescriptor {
	width := 0
	for r := 0; r < HeaderRows && r < len(grid); r++ {
		if len(grid[r]) > width {
			width = len(grid[r])
		}
	}

	out := make([]core.ColumnDescriptor, width)
	var fold headerFold
	for c := 0; c < width; c++ {
		fold, out[c] = fold.next(grid.Cell(0, c), grid.Cell(1, c), grid.Cell(2, c))
	}
	return out
}
