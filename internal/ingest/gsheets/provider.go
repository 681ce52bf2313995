// Package gsheets loads a repertoire dataset from per-sheet CSV exports of a
// shared Google Sheets document.
package gsheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"repertoire/internal/extract"
	"repertoire/internal/grid"
	"repertoire/internal/ingest"
	"repertoire/internal/models"
)

// Fetcher retrieves one sheet's raw CSV text by its grid identifier.
type Fetcher interface {
	FetchCSV(ctx context.Context, gid string) (string, error)
}

// SheetRef names one configured sheet. An empty GID means the optional sheet
// was not configured and is skipped without error.
type SheetRef struct {
	Name string
	GID  string
}

// Provider fetches and parses each configured sheet sequentially: one
// sheet's fetch and parse completes before the next begins.
type Provider struct {
	fetcher Fetcher
	sheets  []SheetRef
	parser  *extract.Parser
	log     *slog.Logger
}

// NewProvider creates a CSV-export ingest provider.
func NewProvider(fetcher Fetcher, sheets []SheetRef, parser *extract.Parser, log *slog.Logger) *Provider {
	return &Provider{fetcher: fetcher, sheets: sheets, parser: parser, log: log}
}

// Load fetches each configured sheet, parses it into a grid and runs the
// extraction engine. A fetch or parse failure for one sheet is logged and
// that sheet skipped; the load continues. Zero songs after all sheets fails
// with extract.ErrNoSongs.
func (p *Provider) Load(ctx context.Context) (*models.Dataset, *ingest.Result, error) {
	var sheets []ingest.Sheet
	for _, ref := range p.sheets {
		if ref.GID == "" {
			p.log.Debug("sheet not configured, skipping", "sheet", ref.Name)
			continue
		}
		text, err := p.fetcher.FetchCSV(ctx, ref.GID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			p.log.Warn("sheet fetch failed, skipping", "sheet", ref.Name, "error", err)
			continue
		}
		g, err := grid.FromCSV(text)
		if err != nil {
			p.log.Warn("sheet CSV parse failed, skipping", "sheet", ref.Name, "error", err)
			continue
		}
		sheets = append(sheets, ingest.Sheet{Name: ref.Name, Grid: g})
	}

	ds := models.NewDataset()
	res := ingest.ProcessAll(p.parser, sheets, ds)
	p.log.Info("sheets load complete",
		"sheets_processed", res.SheetsProcessed,
		"sheets_skipped", res.SheetsSkipped,
		"songs", res.Songs,
	)

	if res.Songs == 0 {
		return nil, &res, extract.ErrNoSongs
	}
	return ds, &res, nil
}

// HTTPFetcher fetches published-sheet CSV exports over HTTP.
type HTTPFetcher struct {
	client *http.Client
	docID  string
}

// NewHTTPFetcher creates a fetcher for the given spreadsheet document ID.
func NewHTTPFetcher(docID string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		docID:  docID,
	}
}

// FetchCSV downloads one sheet's CSV export.
func (f *HTTPFetcher) FetchCSV(ctx context.Context, gid string) (string, error) {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", f.docID, gid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching sheet: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading sheet body: %w", err)
	}
	return string(body), nil
}
