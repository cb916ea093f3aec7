package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"
)

// Store keeps whole-sheet grids in memory, keyed by sheet name. The
// spreadsheet ID is ignored: a Store behaves like a single spreadsheet.
type Store struct {
	mu     sync.Mutex
	sheets map[string]core.Grid
}

var _ ports.GridReader = (*Store)(nil)

func New() *Store {
	return &Store{sheets: map[string]core.Grid{}}
}

// NewFromDir seeds a store from every <name>.csv file in dir; the file base
// name becomes the sheet name. A missing directory yields an empty store.
func NewFromDir(dir string) (*Store, error) {
	s := New()
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	for _, path := range matches {
		grid, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.Put(name, grid)
		slog.Debug("Seeded sheet from CSV", "sheet", name, "rows", len(grid), "path", path)
	}
	return s, nil
}

// Put stores a copy of grid under the sheet name.
func (s *Store) Put(sheet string, grid core.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[strings.TrimSpace(sheet)] = grid.Clone()
}

// Sheets returns the stored sheet names.
func (s *Store) Sheets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sheets))
	for name := range s.sheets {
		out = append(out, name)
	}
	return out
}

// ReadGrid implements sheets.GridReader.
func (s *Store) ReadGrid(_ context.Context, _ string, rng string) (core.Grid, error) {
	r, err := ports.ParseRange(rng)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	grid, ok := s.sheets[r.Sheet]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: sheet %q", ports.ErrRangeNotFound, r.Sheet)
	}
	return r.Apply(grid), nil
}

func readCSV(path string) (core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return core.Grid(rows), nil
}
