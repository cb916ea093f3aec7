package core

// Grid is a block of cells as returned by a spreadsheet values read.
// Rows may have different lengths; missing trailing cells read as empty.
type (
	Grid [][]string

	// ColumnDescriptor is the resolved header triple of one data column.
	ColumnDescriptor struct {
		Category    string `json:"category"`
		SubCategory string `json:"subCategory"`
		Metric      string `json:"metric"`
	}

	// PortfolioItem is one holding row of the portfolio sheet.
	PortfolioItem struct {
		Name       string  `json:"name" yaml:"name"`
		Investment string  `json:"investment" yaml:"investment"`
		Category   string  `json:"category" yaml:"category"`
		Amount     float64 `json:"amount" yaml:"amount"`
		Price      float64 `json:"price" yaml:"price"`
		Currency   string  `json:"currency" yaml:"currency"`
		ValueCAD   float64 `json:"valueCAD" yaml:"valueCAD"`
		Percent    float64 `json:"percent" yaml:"percent"`
	}

	// InvestmentAccount holds the per-account investment metrics.
	// Contribution is a flow, CurrentValue a snapshot.
	InvestmentAccount struct {
		Contribution float64 `json:"contribution" yaml:"contribution"`
		CurrentValue float64 `json:"currentValue" yaml:"currentValue"`
	}

	Wealth struct {
		Liquid float64 `json:"liquid" yaml:"liquid"`
		Fixed  float64 `json:"fixed" yaml:"fixed"`
	}

	// FinancialRecord is one dated row of the financial planning sheet.
	// Date is the literal source cell, e.g. "15 April 2024".
	FinancialRecord struct {
		Date        string                       `json:"date" yaml:"date"`
		IncomeBasic float64                      `json:"incomeBasic" yaml:"incomeBasic"`
		IncomeExtra float64                      `json:"incomeExtra" yaml:"incomeExtra"`
		Expenses    map[string]float64           `json:"expenses" yaml:"expenses"`
		NetIncome   float64                      `json:"netIncome" yaml:"netIncome"`
		Investments map[string]InvestmentAccount `json:"investments" yaml:"investments"`
		Cash        map[string]float64           `json:"cash" yaml:"cash"`
		Wealth      Wealth                       `json:"wealth" yaml:"wealth"`
		LostMoney   float64                      `json:"lostMoney" yaml:"lostMoney"`
	}

	// AggregatedRecord has the shape of a FinancialRecord with Date holding
	// a "Month Year" label.
	AggregatedRecord = FinancialRecord
)

// Cell returns the cell at row r, column c, or "" when out of range.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) {
		return ""
	}
	row := g[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// NewFinancialRecord returns a zeroed record with initialized maps.
func NewFinancialRecord(date string) FinancialRecord {
	return FinancialRecord{
		Date:        date,
		Expenses:    map[string]float64{},
		Investments: map[string]InvestmentAccount{},
		Cash:        map[string]float64{},
	}
}

// Total returns liquid plus fixed wealth.
func (w Wealth) Total() float64 {
	return w.Liquid + w.Fixed
}

// TotalIncome returns basic plus extra income.
func (r FinancialRecord) TotalIncome() float64 {
	return r.IncomeBasic + r.IncomeExtra
}

// TotalExpenses sums every expense sub-category.
func (r FinancialRecord) TotalExpenses() float64 {
	var total float64
	for _, v := range r.Expenses {
		total += v
	}
	return total
}
