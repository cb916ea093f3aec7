package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sheetfolio/internal/services"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// writeOutput encodes v to w as indented JSON or YAML. The text format is
// only available for summaries.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatText:
		sum, ok := v.(services.Summary)
		if !ok {
			return fmt.Errorf("format %q is only supported by the summary command", formatText)
		}
		return writeSummaryText(w, sum)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// cad renders an amount as Canadian dollars, e.g. "$1,234.50".
func cad(v float64) string {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.CAD).Display()
}

func writeSummaryText(w io.Writer, sum services.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total portfolio value\t%s\n", cad(sum.TotalValueCAD))
	fmt.Fprintf(tw, "Net worth\t%s\n", cad(sum.NetWorth))
	fmt.Fprintf(tw, "Average monthly expenses\t%s\n", cad(sum.AverageMonthlyExpenses))

	if len(sum.Allocation) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Investment\tValue\tShare")
		for _, a := range sum.Allocation {
			fmt.Fprintf(tw, "%s\t%s\t%.2f%%\n", a.Investment, cad(a.ValueCAD), a.Percent)
		}
	}

	if len(sum.Months) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Month\tIncome\tExpenses\tNet worth")
		for _, m := range sum.Months {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Month, cad(m.Income), cad(m.Expenses), cad(m.NetWorth))
		}
	}
	return tw.Flush()
}
