// Package core holds the finance data model shared by the parsers and the
// aggregator, plus the numeric normalization used for every sheet cell.
//
// Sheet cells arrive formatted for display ("$2,000.00", "12.5%"). The
// normalizer strips the decoration and never fails: anything that does not
// parse becomes zero. Callers that need to know about bad input use
// TryParseAmount and record a Warning.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	cellDecoration = strings.NewReplacer("$", "", ",", "", "%", "")
	hundred        = decimal.NewFromInt(100)
)

// ParseAmount converts a currency or percent formatted cell to a number.
//
// Examples:
//
//	ParseAmount("$2,000.00") -> 2000
//	ParseAmount("50%")       -> 50
//	ParseAmount("")          -> 0
//	ParseAmount("Invalid")   -> 0
func ParseAmount(cell string) float64 {
	v, _ := TryParseAmount(cell)
	return v
}

// ParsePercent converts a percent cell ("50%") to a 0-1 ratio.
func ParsePercent(cell string) float64 {
	d, ok := parseDecimal(cell)
	if !ok {
		return 0
	}
	f, _ := d.Div(hundred).Float64()
	return f
}

// TryParseAmount is ParseAmount that also reports whether the cell held a
// number. An empty cell yields (0, true); it is blank, not malformed.
func TryParseAmount(cell string) (float64, bool) {
	if strings.TrimSpace(cell) == "" {
		return 0, true
	}
	d, ok := parseDecimal(cell)
	if !ok {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

func parseDecimal(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cellDecoration.Replace(cell))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
