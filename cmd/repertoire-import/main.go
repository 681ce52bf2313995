package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"repertoire/internal/config"
	"repertoire/internal/extract"
	"repertoire/internal/ingest"
	"repertoire/internal/ingest/workbook"
	"repertoire/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	workbookPath := flag.String("workbook", "", "xlsx workbook to import (overrides config)")
	dryRun := flag.Bool("dry-run", false, "report counts without writing a snapshot")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path := cfg.Source.WorkbookPath
	if *workbookPath != "" {
		path = *workbookPath
	}
	if path == "" {
		fmt.Fprintf(os.Stderr, "Usage: repertoire-import -config config.yaml [-workbook repertoire.xlsx] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode, no snapshot will be written")
	}

	ctx := context.Background()
	parser := extract.New(log, cfg.Source.KnownMembers)
	provider := workbook.NewProvider(parser, log)

	ds, result, err := provider.LoadFile(ctx, path)
	if err != nil {
		log.Error("import failed", "workbook", path, "error", err)
		if result != nil {
			printResult(log, result)
		}
		os.Exit(1)
	}

	printResult(log, result)

	if *dryRun {
		log.Info("dry run complete")
		return
	}

	db, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		log.Error("failed to open cache", "path", cfg.Cache.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	id, err := db.SaveSnapshot(ctx, ds, "import:"+path)
	if err != nil {
		log.Error("snapshot save failed", "error", err)
		os.Exit(1)
	}
	if _, err := db.PruneSnapshots(ctx, cfg.Cache.KeepSnapshots); err != nil {
		log.Warn("snapshot prune failed", "error", err)
	}

	log.Info("import complete", "snapshot_id", id)
}

func printResult(log *slog.Logger, result *ingest.Result) {
	log.Info("import stats",
		"sheets_processed", result.SheetsProcessed,
		"sheets_skipped", result.SheetsSkipped,
		"songs", result.Songs,
		"members", result.Members,
		"progressions", result.Progressions,
		"vocal_ranges", result.VocalRanges,
		"vocal_groups", result.VocalGroups,
		"task_members", result.TaskMembers,
	)
}
