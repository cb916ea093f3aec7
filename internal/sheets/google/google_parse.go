package google

import (
	"fmt"
	"strings"

	"sheetfolio/internal/core"
)

// toGrid converts a values matrix (as returned by the Sheets API) into a
// string grid. Cells come back as strings for formatted values, as float64
// or bool otherwise; nil cells become "".
func toGrid(values [][]interface{}) core.Grid {
	if len(values) == 0 {
		return core.Grid{}
	}
	grid := make(core.Grid, len(values))
	for i, row := range values {
		grid[i] = toStrings(row)
	}
	return grid
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
