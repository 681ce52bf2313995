// Package workbook loads a repertoire dataset from an xlsx workbook.
package workbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"repertoire/internal/extract"
	"repertoire/internal/grid"
	"repertoire/internal/ingest"
	"repertoire/internal/models"
)

// Provider converts an in-memory workbook into the normalized dataset.
type Provider struct {
	parser *extract.Parser
	log    *slog.Logger
}

// NewProvider creates a workbook ingest provider.
func NewProvider(parser *extract.Parser, log *slog.Logger) *Provider {
	return &Provider{parser: parser, log: log}
}

// Load enumerates the workbook's sheets, converts each to a string grid and
// runs the extraction engine. A sheet that cannot be read is logged and
// skipped; a load yielding zero songs fails with extract.ErrNoSongs.
func (p *Provider) Load(ctx context.Context, r io.Reader) (*models.Dataset, *ingest.Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var sheets []ingest.Sheet
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rows, err := f.GetRows(name)
		if err != nil {
			p.log.Warn("failed to read sheet, skipping", "sheet", name, "error", err)
			continue
		}
		sheets = append(sheets, ingest.Sheet{Name: name, Grid: grid.Grid(rows)})
	}

	ds := models.NewDataset()
	res := ingest.ProcessAll(p.parser, sheets, ds)
	p.log.Info("workbook load complete",
		"sheets_processed", res.SheetsProcessed,
		"sheets_skipped", res.SheetsSkipped,
		"songs", res.Songs,
	)

	if res.Songs == 0 {
		return nil, &res, extract.ErrNoSongs
	}
	return ds, &res, nil
}

// LoadFile opens the workbook at path and runs Load on it.
func (p *Provider) LoadFile(ctx context.Context, path string) (*models.Dataset, *ingest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook file: %w", err)
	}
	defer f.Close()
	return p.Load(ctx, f)
}
