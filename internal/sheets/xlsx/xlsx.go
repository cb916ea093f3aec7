// Package xlsx reads sheet grids from a local .xlsx workbook, for working
// offline against an export of the Google spreadsheet.
package xlsx

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"
)

// Workbook is an open .xlsx file. The spreadsheet ID passed to ReadGrid is
// ignored; the workbook is the spreadsheet.
type Workbook struct {
	mu   sync.Mutex
	f    *excelize.File
	path string
}

var _ ports.GridReader = (*Workbook)(nil)

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// SheetNames lists the workbook's sheets in tab order.
func (w *Workbook) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.GetSheetList()
}

// ReadGrid implements sheets.GridReader. Cells are read as formatted text,
// matching what the Sheets API returns for FORMATTED_VALUE.
func (w *Workbook) ReadGrid(ctx context.Context, _ string, rng string) (core.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := ports.ParseRange(rng)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if idx, err := w.f.GetSheetIndex(r.Sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q in %s", ports.ErrRangeNotFound, r.Sheet, w.path)
	}
	rows, err := w.f.GetRows(r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", r.Sheet, err)
	}
	return r.Apply(core.Grid(rows)), nil
}

func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
