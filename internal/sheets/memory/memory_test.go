package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"
)

func TestStorePutAndRead(t *testing.T) {
	s := New()
	src := core.Grid{{"Name", "Value"}, {"AAPL", "$2,000.00", ""}}
	s.Put("Portfolio", src)
	src[0][0] = "mutated"

	got, err := s.ReadGrid(context.Background(), "any-id", "Portfolio!A1:B")
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	want := core.Grid{{"Name", "Value"}, {"AAPL", "$2,000.00"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	got[1][0] = "changed"
	again, _ := s.ReadGrid(context.Background(), "", "Portfolio")
	if again[1][0] != "AAPL" {
		t.Fatalf("ReadGrid returned a shared grid")
	}
}

func TestStoreReadMissing(t *testing.T) {
	s := New()
	_, err := s.ReadGrid(context.Background(), "", "Nope!A1:B2")
	if !errors.Is(err, ports.ErrRangeNotFound) {
		t.Fatalf("expected ErrRangeNotFound, got %v", err)
	}
	_, err = s.ReadGrid(context.Background(), "", "")
	if !errors.Is(err, ports.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewFromDirSeedsCSV(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("Financial.csv", "Date,Income,\n,Basic,Extra\n,,\n15 April 2024,\"5,000\",100\n")
	mustWrite("notes.txt", "ignored")

	s, err := NewFromDir(dir)
	if err != nil {
		t.Fatalf("NewFromDir: %v", err)
	}
	if names := s.Sheets(); len(names) != 1 || names[0] != "Financial" {
		t.Fatalf("unexpected sheets: %v", names)
	}
	grid, err := s.ReadGrid(context.Background(), "", "Financial")
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if grid.Cell(3, 1) != "5,000" || grid.Cell(1, 2) != "Extra" {
		t.Fatalf("unexpected grid: %q", grid)
	}
	// trailing blank cells trimmed like the Sheets API does
	if len(grid[0]) != 2 || len(grid[2]) != 0 {
		t.Fatalf("trailing cells not trimmed: %q", grid)
	}
}

func TestNewFromDirMissingDirectory(t *testing.T) {
	s, err := NewFromDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("NewFromDir: %v", err)
	}
	if len(s.Sheets()) != 0 {
		t.Fatalf("expected empty store")
	}
}
