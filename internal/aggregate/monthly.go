// Package aggregate rolls daily financial records up into monthly ones.
//
// Flows (income, expenses, contributions, net income, lost money) are summed
// over the month. Snapshots (cash balances, wealth, investment current
// values) take the value of the last record of the month in input order.
// Records are expected in chronological order; they are never sorted here.
// CheckChronological reports input that violates that expectation.
package aggregate

import (
	"strings"

	"sheetfolio/internal/core"
)

// MonthKey derives the "Month Year" label from a "<day> <month> <year>"
// date. It reports false when the date has fewer than three tokens.
func MonthKey(date string) (string, bool) {
	parts := strings.Fields(date)
	if len(parts) < 3 {
		return "", false
	}
	return parts[1] + " " + parts[2], true
}

// Monthly groups records by month, in first-seen order. Records whose date
// has fewer than three tokens are dropped.
func Monthly(records []core.FinancialRecord) []core.AggregatedRecord {
	out, _ := MonthlyWithDiagnostics(records)
	return out
}

// MonthlyWithDiagnostics is Monthly plus a warning for every dropped record.
// Warning.Row is the index into records.
func MonthlyWithDiagnostics(records []core.FinancialRecord) ([]core.AggregatedRecord, core.Diagnostics) {
	var (
		out   []core.AggregatedRecord
		index = map[string]int{}
		diags core.Diagnostics
	)
	for i, r := range records {
		key, ok := MonthKey(r.Date)
		if !ok {
			diags.Add(core.Warning{Row: i, Col: -1, Kind: core.ShortDate, Value: r.Date,
				Message: "date is not \"<day> <month> <year>\", record dropped"})
			continue
		}
		pos, seen := index[key]
		if !seen {
			pos = len(out)
			index[key] = pos
			out = append(out, core.NewFinancialRecord(key))
		}
		merge(&out[pos], r)
	}
	return out, diags
}

func merge(acc *core.AggregatedRecord, r core.FinancialRecord) {
	acc.IncomeBasic += r.IncomeBasic
	acc.IncomeExtra += r.IncomeExtra
	acc.NetIncome += r.NetIncome
	acc.LostMoney += r.LostMoney

	for k, v := range r.Expenses {
		acc.Expenses[k] += v
	}
	for k, v := range r.Investments {
		a := acc.Investments[k]
		a.Contribution += v.Contribution
		a.CurrentValue = v.CurrentValue
		acc.Investments[k] = a
	}
	for k, v := range r.Cash {
		acc.Cash[k] = v
	}
	acc.Wealth = r.Wealth
}
