// repertoire-mcp serves the repertoire dataset to MCP clients over stdio.
// It loads once at startup, preferring the live source and falling back to
// the latest cached snapshot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"sort"

	"repertoire/internal/config"
	"repertoire/internal/extract"
	"repertoire/internal/ingest"
	"repertoire/internal/ingest/gsheets"
	"repertoire/internal/ingest/workbook"
	"repertoire/internal/mcp"
	"repertoire/internal/models"
	"repertoire/internal/storage"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// staticSource holds the dataset loaded at startup.
type staticSource struct {
	ds *models.Dataset
}

func (s staticSource) Dataset() *models.Dataset { return s.ds }

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	ds, _, err := loadDataset(ctx, cfg, log)
	if err != nil {
		log.Warn("live load failed, trying cache", "error", err)

		db, dbErr := storage.Open(cfg.Cache.Path)
		if dbErr != nil {
			log.Error("failed to open cache", "error", dbErr)
			os.Exit(1)
		}
		defer db.Close()

		cached, info, cacheErr := db.LatestSnapshot(ctx)
		if cacheErr != nil {
			log.Error("no usable dataset", "load_error", err, "cache_error", cacheErr)
			os.Exit(1)
		}
		ds = cached
		log.Info("serving cached snapshot", "snapshot_id", info.ID)
	}

	s := mcp.New(staticSource{ds: ds}, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func loadDataset(ctx context.Context, cfg *config.Config, log *slog.Logger) (*models.Dataset, *ingest.Result, error) {
	parser := extract.New(log, cfg.Source.KnownMembers)

	if cfg.Source.WorkbookPath != "" {
		return workbook.NewProvider(parser, log).LoadFile(ctx, cfg.Source.WorkbookPath)
	}

	refs := make([]gsheets.SheetRef, 0, len(cfg.Source.Sheets.GIDs))
	for name, gid := range cfg.Source.Sheets.GIDs {
		refs = append(refs, gsheets.SheetRef{Name: name, GID: gid})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })

	fetcher := gsheets.NewHTTPFetcher(cfg.Source.Sheets.DocID)
	return gsheets.NewProvider(fetcher, refs, parser, log).Load(ctx)
}
