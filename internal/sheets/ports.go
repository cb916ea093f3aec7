package sheets

import (
	"context"
	"errors"

	"sheetfolio/internal/core"
)

var (
	ErrRangeNotFound = errors.New("range not found")
	ErrInvalidRange  = errors.New("invalid range")
)

// Ports for outbound adapters.
type (
	// GridReader returns the cells of a spreadsheet range, row-major.
	// rng uses A1 notation, e.g. "Portfolio!A1:H" or "Financial".
	GridReader interface {
		ReadGrid(ctx context.Context, spreadsheetID, rng string) (core.Grid, error)
	}

	// GridReaderFunc adapts a function to GridReader.
	GridReaderFunc func(ctx context.Context, spreadsheetID, rng string) (core.Grid, error)
)

func (f GridReaderFunc) ReadGrid(ctx context.Context, spreadsheetID, rng string) (core.Grid, error) {
	return f(ctx, spreadsheetID, rng)
}
