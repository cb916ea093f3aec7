package services

import "github.com/shopspring/decimal"

// AllocationSlice is the CAD value held in one investment type.
type AllocationSlice struct {
	Investment string  `json:"investment" yaml:"investment"`
	ValueCAD   float64 `json:"valueCAD" yaml:"valueCAD"`
	Percent    float64 `json:"percent" yaml:"percent"`
}

// MonthlyPoint is one month of the income, expense and net worth series.
type MonthlyPoint struct {
	Month    string  `json:"month" yaml:"month"`
	Income   float64 `json:"income" yaml:"income"`
	Expenses float64 `json:"expenses" yaml:"expenses"`
	NetWorth float64 `json:"netWorth" yaml:"netWorth"`
}

// Summary holds the headline figures of a snapshot.
type Summary struct {
	TotalValueCAD          float64           `json:"totalValueCAD" yaml:"totalValueCAD"`
	Allocation             []AllocationSlice `json:"allocation" yaml:"allocation"`
	NetWorth               float64           `json:"netWorth" yaml:"netWorth"`
	AverageMonthlyExpenses float64           `json:"averageMonthlyExpenses" yaml:"averageMonthlyExpenses"`
	Months                 []MonthlyPoint    `json:"months" yaml:"months"`
}

// Summarize computes portfolio allocation by investment type (first-seen
// order), net worth from the last month's wealth and the mean monthly
// expense total. Sums are accumulated in decimal.
func Summarize(s *Snapshot) Summary {
	var sum Summary

	total := decimal.Zero
	byInvestment := map[string]decimal.Decimal{}
	var order []string
	for _, item := range s.Portfolio {
		v := decimal.NewFromFloat(item.ValueCAD)
		total = total.Add(v)
		if _, ok := byInvestment[item.Investment]; !ok {
			order = append(order, item.Investment)
		}
		byInvestment[item.Investment] = byInvestment[item.Investment].Add(v)
	}
	sum.TotalValueCAD = total.InexactFloat64()

	sum.Allocation = make([]AllocationSlice, 0, len(order))
	for _, name := range order {
		v := byInvestment[name]
		slice := AllocationSlice{Investment: name, ValueCAD: v.InexactFloat64()}
		if !total.IsZero() {
			slice.Percent = v.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		sum.Allocation = append(sum.Allocation, slice)
	}

	expenses := decimal.Zero
	sum.Months = make([]MonthlyPoint, 0, len(s.Monthly))
	for _, m := range s.Monthly {
		e := decimal.Zero
		for _, v := range m.Expenses {
			e = e.Add(decimal.NewFromFloat(v))
		}
		expenses = expenses.Add(e)
		sum.Months = append(sum.Months, MonthlyPoint{
			Month:    m.Date,
			Income:   decimal.NewFromFloat(m.IncomeBasic).Add(decimal.NewFromFloat(m.IncomeExtra)).InexactFloat64(),
			Expenses: e.InexactFloat64(),
			NetWorth: decimal.NewFromFloat(m.Wealth.Liquid).Add(decimal.NewFromFloat(m.Wealth.Fixed)).InexactFloat64(),
		})
	}
	if n := len(s.Monthly); n > 0 {
		sum.NetWorth = sum.Months[n-1].NetWorth
		sum.AverageMonthlyExpenses = expenses.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
	}
	return sum
}
