package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"repertoire/internal/config"
	"repertoire/internal/extract"
	"repertoire/internal/ingest"
	"repertoire/internal/ingest/gsheets"
	"repertoire/internal/ingest/workbook"
	"repertoire/internal/models"
	"repertoire/internal/server"
	"repertoire/internal/storage"

	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("repertoire starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		log.Error("failed to open cache", "path", cfg.Cache.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("cache open", "path", cfg.Cache.Path)

	ctx := context.Background()
	loader := &snapshotLoader{
		inner: newSourceLoader(cfg, log),
		db:    db,
		keep:  cfg.Cache.KeepSnapshots,
		log:   log,
	}

	// Initial load: prefer the live source, fall back to the latest cached
	// snapshot when the source is unreachable or yields no songs.
	ds, _, err := loader.Load(ctx)
	source := "live"
	if err != nil {
		log.Warn("live load failed, trying cache", "error", err)
		cached, info, cacheErr := db.LatestSnapshot(ctx)
		if cacheErr != nil {
			if errors.Is(cacheErr, storage.ErrNoSnapshot) {
				log.Error("no cached snapshot available", "load_error", err)
			} else {
				log.Error("cache read failed", "error", cacheErr)
			}
			os.Exit(1)
		}
		ds = cached
		source = "cache"
		log.Info("serving cached snapshot", "snapshot_id", info.ID, "created_at", info.CreatedAt)
	}

	srv := server.New(loader, ds, source, log)

	var listener net.Listener
	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr)
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// newSourceLoader builds the source-specific loader the config selects.
func newSourceLoader(cfg *config.Config, log *slog.Logger) server.Loader {
	parser := extract.New(log, cfg.Source.KnownMembers)

	if cfg.Source.WorkbookPath != "" {
		return &workbookLoader{
			provider: workbook.NewProvider(parser, log),
			path:     cfg.Source.WorkbookPath,
		}
	}

	refs := make([]gsheets.SheetRef, 0, len(cfg.Source.Sheets.GIDs))
	for name, gid := range cfg.Source.Sheets.GIDs {
		refs = append(refs, gsheets.SheetRef{Name: name, GID: gid})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })

	fetcher := gsheets.NewHTTPFetcher(cfg.Source.Sheets.DocID)
	return gsheets.NewProvider(fetcher, refs, parser, log)
}

// workbookLoader re-reads the workbook file on every load.
type workbookLoader struct {
	provider *workbook.Provider
	path     string
}

func (l *workbookLoader) Load(ctx context.Context) (*models.Dataset, *ingest.Result, error) {
	return l.provider.LoadFile(ctx, l.path)
}

// snapshotLoader caches every successful load. Cache write failures are
// logged but never fail the load.
type snapshotLoader struct {
	inner server.Loader
	db    *storage.DB
	keep  int
	log   *slog.Logger
}

func (l *snapshotLoader) Load(ctx context.Context) (*models.Dataset, *ingest.Result, error) {
	ds, result, err := l.inner.Load(ctx)
	if err != nil {
		return nil, result, err
	}

	id, err := l.db.SaveSnapshot(ctx, ds, "live")
	if err != nil {
		l.log.Warn("snapshot save failed", "error", err)
		return ds, result, nil
	}
	if _, err := l.db.PruneSnapshots(ctx, l.keep); err != nil {
		l.log.Warn("snapshot prune failed", "error", err)
	}
	l.log.Info("snapshot saved", "snapshot_id", id)

	return ds, result, nil
}
