package parser

import (
	"strings"

	"sheetfolio/internal/core"
)

// ParseFinancial maps the financial planning grid to one record per dated
// row, in input order. Rows 0-2 are the header, column 0 holds the date.
// Rows with an empty date are skipped.
func ParseFinancial(grid core.Grid) []core.FinancialRecord {
	records, _ := ParseFinancialWithDiagnostics(grid)
	return records
}

// ParseFinancialWithDiagnostics is ParseFinancial plus warnings for skipped
// rows, malformed numbers and header columns that route nowhere.
func ParseFinancialWithDiagnostics(grid core.Grid) ([]core.FinancialRecord, core.Diagnostics) {
	descs := ResolveHeaders(grid)
	kinds := make([]CategoryKind, len(descs))
	var diags core.Diagnostics
	for c := 1; c < len(descs); c++ {
		kinds[c] = Classify(descs[c].Category)
		checkColumn(c, descs[c], kinds[c], &diags)
	}

	var records []core.FinancialRecord
	for r := HeaderRows; r < len(grid); r++ {
		row := grid[r]
		date := grid.Cell(r, 0)
		if date == "" {
			if !isBlankRow(row) {
				diags.Add(core.Warning{Row: r, Col: 0, Kind: core.MissingDate,
					Message: "row has values but no date, skipped"})
			}
			continue
		}

		rec := core.NewFinancialRecord(date)
		// Only cells present in the row are visited. The Sheets API trims
		// trailing blanks, and visiting them would zero snapshot fields.
		for c := 1; c < len(row) && c < len(descs); c++ {
			val, ok := core.TryParseAmount(row[c])
			if !ok {
				diags.Add(malformed(r, c, row[c]))
			}
			route(&rec, kinds[c], descs[c], val)
		}
		records = append(records, rec)
	}
	return records, diags
}

// route applies one normalized cell value to the record. Flows on the
// income and expense branches accumulate; everything else overwrites.
func route(rec *core.FinancialRecord, kind CategoryKind, d core.ColumnDescriptor, val float64) {
	sub := d.SubCategory
	switch kind {
	case Income:
		switch {
		case containsFold(sub, "basic"):
			rec.IncomeBasic += val
		case containsFold(sub, "extra"):
			rec.IncomeExtra += val
		case containsFold(sub, "net"):
			rec.NetIncome = val
		}
	case Expense:
		if sub != "" {
			rec.Expenses[sub] += val
		}
	case NetIncome:
		rec.NetIncome = val
	case Investment:
		if sub == "" {
			return
		}
		acct := rec.Investments[sub]
		switch {
		case containsFold(d.Metric, "contribution"):
			acct.Contribution = val
		case containsFold(d.Metric, "current"), containsFold(d.Metric, "value"):
			acct.CurrentValue = val
		}
		rec.Investments[sub] = acct
	case Cash:
		if sub != "" {
			rec.Cash[sub] = val
		}
	case Wealth:
		switch {
		case containsFold(sub, "liquid"):
			rec.Wealth.Liquid = val
		case containsFold(sub, "fixed"):
			rec.Wealth.Fixed = val
		}
	case LostMoney:
		rec.LostMoney = val
	}
}

func checkColumn(c int, d core.ColumnDescriptor, kind CategoryKind, diags *core.Diagnostics) {
	switch kind {
	case Unknown:
		if strings.TrimSpace(d.Category) != "" {
			diags.Add(core.Warning{Row: 0, Col: c, Kind: core.UnknownCategory, Value: d.Category,
				Message: "category not recognized, column ignored"})
		}
	case Expense, Investment, Cash:
		if d.SubCategory == "" {
			diags.Add(core.Warning{Row: 1, Col: c, Kind: core.MissingSubCategory, Value: d.Category,
				Message: "sub-category required, column ignored"})
		}
	}
}
