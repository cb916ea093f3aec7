package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"sheetfolio/internal/config"
	applog "sheetfolio/internal/log"
)

func testLogger() *applog.Logger {
	return applog.New(applog.Config{Output: &bytes.Buffer{}})
}

func TestLoadAndValidateConfig_SourceOverride(t *testing.T) {
	t.Setenv("DATA_SOURCE", "memory")
	t.Setenv("XLSX_PATH", "")

	cfg, err := LoadAndValidateConfig("")
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.DataSource != config.SourceMemory {
		t.Errorf("DataSource = %v, want memory", cfg.DataSource)
	}

	if _, err := LoadAndValidateConfig("XLSX"); err == nil {
		t.Error("xlsx override without XLSX_PATH should fail validation")
	}
}

func TestOpenReader_Memory(t *testing.T) {
	dir := t.TempDir()
	csv := "Name,Investment\nAAPL,Stock\n"
	if err := os.WriteFile(filepath.Join(dir, "Portfolio.csv"), []byte(csv), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	cfg := &config.Config{DataSource: config.SourceMemory, MemoryDataDir: dir}

	reader, closer, err := OpenReader(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer closer.Close()

	grid, err := reader.ReadGrid(context.Background(), "", "Portfolio!A1:B")
	if err != nil {
		t.Fatalf("ReadGrid() error = %v", err)
	}
	if grid.Cell(1, 0) != "AAPL" {
		t.Errorf("unexpected grid: %q", grid)
	}
}

func TestOpenReader_Errors(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "google without credentials", cfg: &config.Config{DataSource: config.SourceGoogle}},
		{name: "missing workbook", cfg: &config.Config{DataSource: config.SourceXLSX, XLSXPath: filepath.Join(t.TempDir(), "none.xlsx")}},
		{name: "unknown source", cfg: &config.Config{DataSource: "sqlite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := OpenReader(context.Background(), tt.cfg, testLogger()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewPublisher_Disabled(t *testing.T) {
	client, err := NewPublisher(&config.Config{}, testLogger())
	if err != nil || client != nil {
		t.Fatalf("NewPublisher() = %v, %v; want nil, nil", client, err)
	}
}
