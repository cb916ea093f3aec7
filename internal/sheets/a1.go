package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheetfolio/internal/core"
)

// Range is a parsed A1 range. Rows and columns are zero-based and
// inclusive; -1 in ToRow or ToCol means unbounded.
type Range struct {
	Sheet   string
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// ParseRange parses "Sheet", "Sheet!A1:H40", "'My Sheet'!A:C" or
// "Sheet!A2:H". A range without "!" names a whole sheet.
func ParseRange(rng string) (Range, error) {
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrInvalidRange)
	}
	r := Range{ToRow: -1, ToCol: -1}

	sheet, cells, hasCells := strings.Cut(rng, "!")
	r.Sheet = strings.Trim(strings.TrimSpace(sheet), "'")
	if r.Sheet == "" {
		return Range{}, fmt.Errorf("%w: missing sheet name in %q", ErrInvalidRange, rng)
	}
	if !hasCells || strings.TrimSpace(cells) == "" {
		return r, nil
	}

	from, to, hasTo := strings.Cut(strings.TrimSpace(cells), ":")
	fr, fc, err := parseCorner(from)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, rng, err)
	}
	r.FromRow, r.FromCol = max(fr, 0), max(fc, 0)
	if !hasTo {
		// single cell
		r.ToRow, r.ToCol = fr, fc
		return r, nil
	}
	r.ToRow, r.ToCol, err = parseCorner(to)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, rng, err)
	}
	return r, nil
}

// parseCorner splits "H40" into row 39, col 7. A missing part is -1.
func parseCorner(s string) (row, col int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	letters, digits := s[:i], s[i:]
	if letters == "" && digits == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	row, col = -1, -1
	if letters != "" {
		n, err := excelize.ColumnNameToNumber(letters)
		if err != nil {
			return 0, 0, err
		}
		col = n - 1
	}
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("bad row %q", digits)
		}
		row = n - 1
	}
	return row, col, nil
}

// Apply cuts the range out of a whole-sheet grid. Like the Sheets API it
// drops trailing empty cells of each row and trailing empty rows.
func (r Range) Apply(grid core.Grid) core.Grid {
	out := core.Grid{}
	for i := r.FromRow; i < len(grid); i++ {
		if r.ToRow >= 0 && i > r.ToRow {
			break
		}
		row := grid[i]
		var cells []string
		if r.FromCol < len(row) {
			end := len(row)
			if r.ToCol >= 0 && r.ToCol+1 < end {
				end = r.ToCol + 1
			}
			cells = append([]string(nil), row[r.FromCol:end]...)
		}
		out = append(out, trimTrailing(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	if n == 0 {
		return []string{}
	}
	return cells[:n]
}
