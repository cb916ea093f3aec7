package aggregate

import (
	"strings"
	"time"

	"sheetfolio/internal/core"
)

// dateLayouts are the day-month-year spellings seen in planning sheets.
var dateLayouts = []string{
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate parses a "<day> <month> <year>" date. Extra whitespace is
// tolerated.
func ParseDate(date string) (time.Time, bool) {
	s := strings.Join(strings.Fields(date), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CheckChronological reports every record dated before its predecessor.
// Records whose date does not parse are skipped and do not reset the
// comparison. Warning.Row is the index into records.
func CheckChronological(records []core.FinancialRecord) core.Diagnostics {
	var (
		diags core.Diagnostics
		prev  time.Time
		have  bool
		prevS string
	)
	for i, r := range records {
		t, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		if have && t.Before(prev) {
			diags.Add(core.Warning{Row: i, Col: -1, Kind: core.OutOfOrder, Value: r.Date,
				Message: "dated before " + prevS + "; monthly snapshots assume chronological input"})
		}
		prev, prevS, have = t, r.Date, true
	}
	return diags
}
