package parser

import (
	"testing"

	"sheetfolio/internal/core"
)

func TestParseFinancial_Hierarchical(t *testing.T) {
	grid := core.Grid{
		{"Date", "Income", "", "Expense", "", "Investment", "Investment", "Investment", "Investment"},
		{"", "Basic", "Extra", "Rent", "Food", "RRSP", "RRSP", "TFSA", "TFSA"},
		{"", "", "", "", "", "Contribution", "Current Value", "Contribution", "Current Value"},
		{"15 April 2024", "5000", "1000", "2000", "500", "1000", "10000", "500", "5000"},
	}

	records := ParseFinancial(grid)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Date != "15 April 2024" {
		t.Fatalf("date = %q", r.Date)
	}
	if r.IncomeBasic != 5000 || r.IncomeExtra != 1000 {
		t.Fatalf("income = %v/%v", r.IncomeBasic, r.IncomeExtra)
	}
	if r.Expenses["Rent"] != 2000 || r.Expenses["Food"] != 500 {
		t.Fatalf("expenses = %v", r.Expenses)
	}
	if got := r.Investments["RRSP"]; got != (core.InvestmentAccount{Contribution: 1000, CurrentValue: 10000}) {
		t.Fatalf("RRSP = %+v", got)
	}
	if got := r.Investments["TFSA"]; got != (core.InvestmentAccount{Contribution: 500, CurrentValue: 5000}) {
		t.Fatalf("TFSA = %+v", got)
	}
}

func TestParseFinancial_InvestmentColumns(t *testing.T) {
	grid := core.Grid{
		{"Date", "Investment", "Investment"},
		{"", "RRSP", "RRSP"},
		{"", "Contribution", "Current Value"},
		{"01 May 2024", "1000", "10000"},
	}
	r := ParseFinancial(grid)[0]
	if got := r.Investments["RRSP"]; got != (core.InvestmentAccount{Contribution: 1000, CurrentValue: 10000}) {
		t.Fatalf("RRSP = %+v", got)
	}
}

func TestParseFinancial_Routing(t *testing.T) {
	grid := core.Grid{
		{"Date", "Income", "", "", "Net Income", "Cash", "", "Wealth", "", "Lost", "Expenses", "Notes"},
		{"", "Basic", "Extra", "Net", "", "Checking", "Savings", "Liquid", "Fixed", "", "Rent", "Misc"},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
		{"1 June 2024", "$3,000", "250", "2,900", "2,800", "1,200", "$8,000.50", "9,200", "300,000", "45", "1,500", "99"},
	}
	records, diags := ParseFinancialWithDiagnostics(grid)
	r := records[0]

	if r.IncomeBasic != 3000 || r.IncomeExtra != 250 {
		t.Fatalf("income = %v/%v", r.IncomeBasic, r.IncomeExtra)
	}
	// income/net sets 2900, the later Net Income column overwrites it
	if r.NetIncome != 2800 {
		t.Fatalf("netIncome = %v", r.NetIncome)
	}
	if r.Cash["Checking"] != 1200 || r.Cash["Savings"] != 8000.5 {
		t.Fatalf("cash = %v", r.Cash)
	}
	if r.Wealth != (core.Wealth{Liquid: 9200, Fixed: 300000}) {
		t.Fatalf("wealth = %+v", r.Wealth)
	}
	if r.LostMoney != 45 {
		t.Fatalf("lostMoney = %v", r.LostMoney)
	}
	if r.Expenses["Rent"] != 1500 {
		t.Fatalf("expenses = %v", r.Expenses)
	}
	if len(r.Expenses) != 1 {
		t.Fatalf("unknown category leaked into expenses: %v", r.Expenses)
	}
	unknown := diags.ByKind(core.UnknownCategory)
	if len(unknown) != 1 || unknown[0].Col != 11 || unknown[0].Value != "Notes" {
		t.Fatalf("unexpected unknown-category warnings: %v", unknown)
	}
}

func TestParseFinancial_ExpenseAccumulatesAcrossColumns(t *testing.T) {
	grid := core.Grid{
		{"Date", "Expense", "", "Expense"},
		{"", "Food", "", "Food"},
		{"", "Groceries", "Restaurants", "Delivery"},
		{"3 July 2024", "100", "50", "25"},
	}
	r := ParseFinancial(grid)[0]
	if r.Expenses["Food"] != 175 {
		t.Fatalf("Food = %v", r.Expenses["Food"])
	}
}

func TestParseFinancial_SkipsRowsWithoutDate(t *testing.T) {
	grid := core.Grid{
		{"Date", "Income"},
		{"", "Basic"},
		{"", ""},
		{"1 April 2024", "100"},
		{"", "200"},
		{},
		{"15 April 2024", "300"},
	}
	records, diags := ParseFinancialWithDiagnostics(grid)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Date != "1 April 2024" || records[1].Date != "15 April 2024" {
		t.Fatalf("records out of input order: %q, %q", records[0].Date, records[1].Date)
	}
	missing := diags.ByKind(core.MissingDate)
	if len(missing) != 1 || missing[0].Row != 4 {
		t.Fatalf("expected one missing-date warning on row 4, got %v", missing)
	}
}

func TestParseFinancial_MissingTrailingCellsNotVisited(t *testing.T) {
	grid := core.Grid{
		{"Date", "Income", "Cash", "Investment"},
		{"", "Basic", "Checking", "RRSP"},
		{"", "", "", "Current Value"},
		{"1 April 2024", "100"},
	}
	r := ParseFinancial(grid)[0]
	if _, ok := r.Cash["Checking"]; ok {
		t.Fatalf("missing cell must not create a cash entry")
	}
	if _, ok := r.Investments["RRSP"]; ok {
		t.Fatalf("missing cell must not create an investment entry")
	}
}

func TestParseFinancial_MalformedAndMissingSubCategory(t *testing.T) {
	grid := core.Grid{
		{"Date", "Investment", "Income"},
		{"", "", "Basic"},
		{"", "Contribution", ""},
		{"1 April 2024", "500", "n/a"},
	}
	records, diags := ParseFinancialWithDiagnostics(grid)
	r := records[0]
	if len(r.Investments) != 0 {
		t.Fatalf("investment without account name should be ignored: %v", r.Investments)
	}
	if r.IncomeBasic != 0 {
		t.Fatalf("malformed number should read as 0, got %v", r.IncomeBasic)
	}
	if len(diags.ByKind(core.MissingSubCategory)) != 1 {
		t.Fatalf("expected a missing sub-category warning: %v", diags)
	}
	bad := diags.ByKind(core.MalformedNumber)
	if len(bad) != 1 || bad[0].Row != 3 || bad[0].Col != 2 || bad[0].Value != "n/a" {
		t.Fatalf("unexpected malformed warnings: %v", bad)
	}
}

func TestParseFinancial_HeaderOnly(t *testing.T) {
	grid := core.Grid{{"Date"}, {""}, {""}}
	if records := ParseFinancial(grid); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
