package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"repertoire/internal/ingest"
	"repertoire/internal/models"

	"github.com/go-chi/chi/v5"
)

// Loader produces a fresh dataset from the configured source.
type Loader interface {
	Load(ctx context.Context) (*models.Dataset, *ingest.Result, error)
}

// Server holds dependencies for HTTP handlers. The current dataset is
// swapped atomically on reload; readers never see a partial load.
type Server struct {
	loader Loader
	log    *slog.Logger
	router chi.Router

	mu       sync.RWMutex
	dataset  *models.Dataset
	source   string
	loadedAt time.Time
}

// New creates a new Server with all routes configured. The initial dataset
// may come from the source or from a cached snapshot; source names which.
func New(loader Loader, initial *models.Dataset, source string, log *slog.Logger) *Server {
	s := &Server{
		loader:   loader,
		log:      log,
		router:   chi.NewRouter(),
		dataset:  initial,
		source:   source,
		loadedAt: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)
	s.router.Get("/api/v1/dataset", s.handleDataset)
	s.router.Get("/api/v1/songs", s.handleSongs)
	s.router.Get("/api/v1/members", s.handleMembers)
	s.router.Get("/api/v1/progressions/{title}", s.handleProgression)
	s.router.Post("/api/v1/reload", s.handleReload)
}

// Dataset returns the currently served dataset.
func (s *Server) Dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Reload fetches a fresh dataset from the loader and swaps it in.
func (s *Server) Reload(ctx context.Context) (*ingest.Result, error) {
	ds, result, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dataset = ds
	s.source = "live"
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return result, nil
}
